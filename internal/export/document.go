package export

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/record"
)

// Format selects the export output.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatDocument Format = "pdf" // served as print-ready HTML
)

func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatDocument
}

var docTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Fundamental Health Records</title>
<style>
body { font-family: sans-serif; margin: 20px; color: #333; }
.header { text-align: center; border-bottom: 2px solid #949CAF; padding-bottom: 16px; margin-bottom: 24px; }
.title { font-size: 24px; font-weight: 700; }
.subtitle { font-size: 14px; color: #7f8c8d; }
.record { border: 1px solid #e0e0e0; border-radius: 8px; padding: 12px; margin-bottom: 16px; page-break-inside: avoid; }
.record-type { font-weight: 500; color: #949CAF; }
.record-time { font-size: 14px; color: #666; }
.record-memo { font-size: 14px; font-style: italic; margin-top: 6px; }
.no-records { text-align: center; color: #7f8c8d; font-style: italic; margin-top: 40px; }
</style>
</head>
<body>
<div class="header">
<div class="title">Fundamental Health Records</div>
<div class="subtitle">Period: {{.From}} ~ {{.To}}</div>
<div class="subtitle">{{.Count}} records</div>
</div>
{{if not .Entries}}<div class="no-records">No records to export.</div>{{end}}
{{range .Entries}}<div class="record">
<span class="record-type">{{.TypeLabel}}</span>
<span class="record-time">{{.TimeRange}}</span>
{{if .Duration}}<div class="record-time">Duration: {{.Duration}}</div>{{end}}
{{if .Memo}}<div class="record-memo">Memo: {{.Memo}}</div>{{end}}
</div>
{{end}}</body>
</html>
`))

type docEntry struct {
	TypeLabel string
	TimeRange string
	Duration  string
	Memo      string
}

type docData struct {
	From    string
	To      string
	Count   int
	Entries []docEntry
}

// Document renders a print-ready HTML listing of records in chronological
// order, headed by the covered date range and record count.
func Document(records []internal.Record, from, to time.Time) ([]byte, error) {
	sorted := make([]internal.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	data := docData{
		From:  from.Format(dateLayout),
		To:    to.Format(dateLayout),
		Count: len(sorted),
	}
	for _, r := range sorted {
		entry := docEntry{
			TypeLabel: r.Type.Label(),
			TimeRange: r.StartTime.Format(dateTimeLayout),
			Memo:      r.Memo,
		}
		if r.EndTime != nil {
			entry.TimeRange += " ~ " + r.EndTime.Format(dateTimeLayout)
		}
		if r.Duration != nil {
			entry.Duration = record.FormatDuration(*r.Duration)
		}
		data.Entries = append(data.Entries, entry)
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("export: render document: %w", err)
	}
	return buf.Bytes(), nil
}
