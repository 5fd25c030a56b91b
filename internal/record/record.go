// Package record holds the record domain model logic: validation, interval
// duration math, day/week bucketing, and the view aggregates computed from
// bucketed records.
package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tteslee/fundamental/internal"
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Input is the raw material for a record, before validation.
type Input struct {
	Type      internal.RecordType
	StartTime time.Time
	EndTime   *time.Time
	Memo      string
}

// New validates input and assembles a Record owned by userID. For interval
// types the duration is derived and the end time is normalized for the
// overnight wrap; point types must not carry an end time.
func New(userID string, in Input) (*internal.Record, error) {
	fields, err := build(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	fields.ID = uuid.NewString()
	fields.UserID = userID
	fields.CreatedAt = now
	fields.UpdatedAt = now
	return fields, nil
}

// Replace validates input and produces the full replacement field set for an
// existing record. Identity and ownership are untouched; UpdatedAt is
// refreshed by the storage layer.
func Replace(in Input) (*internal.Record, error) {
	return build(in)
}

func build(in Input) (*internal.Record, error) {
	if !in.Type.IsValid() {
		return nil, &ValidationError{Field: "type", Reason: "must be one of sleep, food, medication"}
	}
	if in.StartTime.IsZero() {
		return nil, &ValidationError{Field: "start_time", Reason: "required"}
	}

	rec := &internal.Record{
		Type:      in.Type,
		StartTime: in.StartTime,
		Memo:      in.Memo,
	}

	if !in.Type.IsInterval() {
		if in.EndTime != nil {
			return nil, &ValidationError{Field: "end_time", Reason: "not allowed for point-in-time types"}
		}
		return rec, nil
	}

	if in.EndTime == nil {
		return nil, &ValidationError{Field: "end_time", Reason: "required for sleep records"}
	}
	minutes, end := NormalizeInterval(in.StartTime, *in.EndTime)
	rec.EndTime = &end
	rec.Duration = &minutes
	return rec, nil
}
