package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebox-scanner/internal/boxspec"
	"phonebox-scanner/internal/classify"
	"phonebox-scanner/internal/reconcile"
	"phonebox-scanner/internal/scan"
)

func fullRow() reconcile.Row {
	return reconcile.Row{
		Detection: classify.Detection{
			Slot:       12,
			Identifier: "10F12",
			Present:    true,
			DarkRatio:  0.5,
			Saturation: 0.05,
			Confidence: 0.85,
			Color:      "black",
		},
		FullName:      "Alice Ahlgren",
		PersonID:      "p1",
		Grade:         "10",
		ExpectedColor: "black",
		Status:        reconcile.StatusTurnedIn,
	}
}

func TestRecordFieldOrder(t *testing.T) {
	got := Record(fullRow())
	want := []string{
		"12", "10F12", "Alice Ahlgren", "p1", "10", "yes",
		"0.500", "0.050", "0.850", "black", "black", "TURNED_IN",
	}
	assert.Equal(t, want, got)
	assert.Len(t, Header(), len(want))
}

func TestRecordEmptyRow(t *testing.T) {
	row := reconcile.Row{
		Detection: classify.Detection{Slot: 3, Identifier: "9B3", Color: "unknown"},
		Status:    reconcile.StatusUnassigned,
	}
	got := Record(row)
	want := []string{
		"3", "9B3", "", "", "", "no",
		"0.000", "0.000", "0.000", "unknown", "", "UNASSIGNED",
	}
	assert.Equal(t, want, got)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []reconcile.Row{fullRow()}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Header(), records[0])
	assert.Equal(t, Record(fullRow()), records[1])
}

func TestWriteJSON(t *testing.T) {
	result := &scan.Result{
		ScanID:    "5e0c7a4e-1111-2222-3333-444455556666",
		Box:       boxspec.Layout{Name: "Grade 10 Box F", Code: "F", Grade: 10, Rows: 5, Cols: 12},
		CreatedAt: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
		Rows:      []reconcile.Row{fullRow()},
		Summary:   scan.Summary{Slots: 1, Present: 1, TurnedIn: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, result.ScanID, m["scanId"])
	require.Contains(t, m, "rows")
	rows := m["rows"].([]any)
	first := rows[0].(map[string]any)
	assert.Equal(t, "TURNED_IN", first["status"])
	assert.Equal(t, "10F12", first["identifier"])
	require.Contains(t, m, "summary")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, []reconcile.Row{fullRow()})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "slot  identifier  name"))
	assert.True(t, strings.HasPrefix(lines[1], "----"))
	assert.Contains(t, lines[2], "Alice Ahlgren")
	assert.Contains(t, lines[2], "TURNED_IN")

	// Cells line up: the identifier column starts at the same offset in
	// every line.
	col := strings.Index(lines[0], "identifier")
	assert.Equal(t, "10F12", lines[2][col:col+5])
}
