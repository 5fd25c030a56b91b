// Package export renders record collections into downloadable formats:
// CSV rows and a printable HTML document.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/record"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

var csvHeader = []string{"Type", "Date", "Start Time", "End Time", "Duration", "Memo", "Created"}

// CSV renders one header row plus one row per record, in the given order.
// Quoting and escaping follow RFC 4180 via encoding/csv.
func CSV(records []internal.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Type.Label(),
			r.StartTime.Format(dateLayout),
			r.StartTime.Format("15:04"),
			"",
			"",
			r.Memo,
			r.CreatedAt.Format(dateTimeLayout),
		}
		if r.EndTime != nil {
			row[3] = r.EndTime.Format("15:04")
		}
		if r.Duration != nil {
			row[4] = record.FormatDuration(*r.Duration)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
