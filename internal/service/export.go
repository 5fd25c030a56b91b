package service

import (
	"time"

	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/export"
	"github.com/tteslee/fundamental/internal/record"
)

type ExportRequest struct {
	Format    string            `json:"format" validate:"required,oneof=csv pdf"`
	StartDate time.Time         `json:"start_date" validate:"required"`
	EndDate   time.Time         `json:"end_date" validate:"required,gtefield=StartDate"`
	Records   []internal.Record `json:"records"`
}

func ValidateExportRequest(body *ExportRequest) error {
	return validate.Struct(body)
}

// ExportResult carries the rendered bytes with their HTTP metadata.
type ExportResult struct {
	ContentType string
	Filename    string
	Body        []byte
}

// Export renders the records inside the requested date range into the
// requested format. Formatting is all-or-nothing over the filtered set.
func Export(body *ExportRequest) (*ExportResult, error) {
	from := record.DayStart(body.StartDate)
	to := record.DayEnd(body.EndDate)

	filtered := make([]internal.Record, 0, len(body.Records))
	for _, r := range body.Records {
		if r.StartTime.Before(from) || r.StartTime.After(to) {
			continue
		}
		filtered = append(filtered, r)
	}

	switch export.Format(body.Format) {
	case export.FormatCSV:
		data, err := export.CSV(filtered)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			ContentType: "text/csv",
			Filename:    "fundamental-records.csv",
			Body:        data,
		}, nil
	default:
		data, err := export.Document(filtered, from, to)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			ContentType: "text/html",
			Filename:    "fundamental-records.html",
			Body:        data,
		}, nil
	}
}
