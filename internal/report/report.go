// Package report renders reconciled scan results as console tables,
// CSV, and JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"phonebox-scanner/internal/reconcile"
	"phonebox-scanner/internal/scan"
)

// Header returns the column names in record order.
func Header() []string {
	return []string{
		"slot", "identifier", "name", "personId", "grade", "present",
		"darkRatio", "saturation", "confidence", "color", "expectedColor", "status",
	}
}

// Record renders one row as flat strings in Header order. Ratios carry
// three decimals, presence prints yes/no.
func Record(row reconcile.Row) []string {
	present := "no"
	if row.Present {
		present = "yes"
	}
	return []string{
		strconv.Itoa(row.Slot),
		row.Identifier,
		row.FullName,
		row.PersonID,
		row.Grade,
		present,
		formatRatio(row.DarkRatio),
		formatRatio(row.Saturation),
		formatRatio(row.Confidence),
		row.Color,
		row.ExpectedColor,
		row.Status.String(),
	}
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// WriteCSV writes a header line followed by one record per row.
func WriteCSV(w io.Writer, rows []reconcile.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(Record(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the whole result (scan id, box, rows, summary) as
// indented JSON.
func WriteJSON(w io.Writer, result *scan.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteTable renders the rows as a fixed-width console table. Column
// widths grow to fit the longest cell.
func WriteTable(w io.Writer, rows []reconcile.Row) {
	header := Header()
	widths := make([]int, len(header))
	for i, name := range header {
		widths[i] = len(name)
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		rec := Record(row)
		for i, cell := range rec {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		records = append(records, rec)
	}

	writeCells(w, header, widths)
	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	writeCells(w, rule, widths)
	for _, rec := range records {
		writeCells(w, rec, widths)
	}
}

func writeCells(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}
