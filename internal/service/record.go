package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/record"
	"github.com/tteslee/fundamental/internal/storage"
)

var validate = validator.New()

type RecordRequest struct {
	Type      string     `json:"type" validate:"required,oneof=sleep food medication"`
	StartTime time.Time  `json:"start_time" validate:"required"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Memo      string     `json:"memo,omitempty" validate:"max=2000"`
}

func ValidateRecordRequest(body *RecordRequest) error {
	return validate.Struct(body)
}

func (r *RecordRequest) input() record.Input {
	return record.Input{
		Type:      internal.RecordType(r.Type),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Memo:      r.Memo,
	}
}

// CreateRecord validates the request, derives duration and the normalized
// end time for interval types, and persists the record for user.
func CreateRecord(ctx context.Context, repo storage.RecordRepository, user *internal.User, body *RecordRequest) (*internal.Record, error) {
	rec, err := record.New(user.ID, body.input())
	if err != nil {
		return nil, err
	}
	if err := repo.InsertRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateRecord replaces all mutable fields of the record. The update is
// scoped to user; matched is false when the record does not exist or is
// owned by someone else, and the two cases are not distinguished.
func UpdateRecord(ctx context.Context, repo storage.RecordRepository, user *internal.User, id string, body *RecordRequest) (*internal.Record, bool, error) {
	fields, err := record.Replace(body.input())
	if err != nil {
		return nil, false, err
	}
	return repo.UpdateRecord(ctx, id, user.ID, storage.RecordFields{
		Type:      fields.Type,
		StartTime: fields.StartTime,
		EndTime:   fields.EndTime,
		Duration:  fields.Duration,
		Memo:      fields.Memo,
	})
}

// DeleteRecord removes the record if user owns it.
func DeleteRecord(ctx context.Context, repo storage.RecordRepository, user *internal.User, id string) (bool, error) {
	return repo.DeleteRecord(ctx, id, user.ID)
}
