package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"phonebox-scanner/internal/slotid"
)

// ErrMissingColumn is returned when the roster header lacks the
// securityNumber column.
var ErrMissingColumn = errors.New("roster is missing the securityNumber column")

// Option configures the loader.
type Option func(*loader)

// WithLogger sets the logger used for loader diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

type loader struct {
	logger *slog.Logger
}

// LoadCSV reads a roster CSV file. Headers are matched
// case-insensitively against personId, fullName, securityNumber and
// currentGrade; missing cells become empty strings and security
// numbers are normalized for joining. Rows with the wrong column count
// are padded or truncated with a logged warning.
func LoadCSV(path string, opts ...Option) ([]Entry, error) {
	l := &loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	decoded, encName, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	// Column-count mismatches are handled below instead of aborting.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty roster: no header row")
		}
		return nil, fmt.Errorf("read roster header: %w", err)
	}

	personCol, nameCol, securityCol, gradeCol := -1, -1, -1, -1
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "personid":
			personCol = i
		case "fullname":
			nameCol = i
		case "securitynumber":
			securityCol = i
		case "currentgrade":
			gradeCol = i
		}
	}
	if securityCol < 0 {
		return nil, ErrMissingColumn
	}

	var entries []Entry
	rowNum := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			l.logger.Warn("skipping unparseable roster row", "row", rowNum, "error", err)
			continue
		}

		if len(row) != len(headers) {
			l.logger.Warn("roster row has wrong column count",
				"row", rowNum,
				"columns", len(row),
				"expected", len(headers))
		}

		entries = append(entries, Entry{
			PersonID:       field(row, personCol),
			FullName:       field(row, nameCol),
			SecurityNumber: slotid.Normalize(field(row, securityCol)),
			CurrentGrade:   field(row, gradeCol),
		})
	}

	l.logger.Debug("roster loaded", "path", path, "encoding", encName, "entries", len(entries))
	return entries, nil
}

// field returns the trimmed cell at col, or an empty string when the
// column is absent or the row is short.
func field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// BOM prefixes used for encoding detection.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode converts roster bytes to UTF-8. School information systems
// export UTF-16 or Windows-1252 at least as often as UTF-8: the BOM
// picks the UTF-16 variants, and bytes that fail UTF-8 validation fall
// back to Windows-1252.
func decode(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[3:], "utf-8-bom", nil

	case bytes.HasPrefix(data, bomUTF16LE):
		out, _, err := transform.Bytes(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), data[2:])
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 LE decode failed: %w", err)
		}
		return out, "utf-16le", nil

	case bytes.HasPrefix(data, bomUTF16BE):
		out, _, err := transform.Bytes(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), data[2:])
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 BE decode failed: %w", err)
		}
		return out, "utf-16be", nil

	case utf8.Valid(data):
		return data, "utf-8", nil

	default:
		out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, "", fmt.Errorf("windows-1252 decode failed: %w", err)
		}
		return out, "windows-1252", nil
	}
}
