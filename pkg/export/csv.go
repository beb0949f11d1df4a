package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Table is a header-plus-rows structure rendered to CSV. Every row must
// have the same number of cells as the header.
type Table struct {
	Headers []string
	Rows    [][]string
}

// WriteCSV renders the table to w in RFC 4180 CSV
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if len(t.Headers) > 0 {
		if err := cw.Write(t.Headers); err != nil {
			return fmt.Errorf("export: failed to write header: %w", err)
		}
	}

	for i, row := range t.Rows {
		if len(t.Headers) > 0 && len(row) != len(t.Headers) {
			return fmt.Errorf("export: row %d has %d cells, expected %d", i, len(row), len(t.Headers))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Money formats a cent amount as a plain decimal string for CSV cells
func Money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
