package storage

import (
	"context"
	"time"

	"github.com/tteslee/fundamental/internal"
)

// RecordFields is the replacement field set for an update. Updates are
// full-field replaces: identity and ownership never change.
type RecordFields struct {
	Type      internal.RecordType
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int
	Memo      string
}

// RecordRepository persists health records. Update and Delete are scoped by
// both record id and owner id; a mismatch on either reports matched=false,
// never an error, so a foreign record is indistinguishable from a missing
// one.
type RecordRepository interface {
	InsertRecord(ctx context.Context, rec *internal.Record) error
	ListRecords(ctx context.Context, userID string) ([]internal.Record, error)
	ListRecordsByRange(ctx context.Context, userID string, from, to time.Time) ([]internal.Record, error)
	UpdateRecord(ctx context.Context, id, userID string, fields RecordFields) (*internal.Record, bool, error)
	DeleteRecord(ctx context.Context, id, userID string) (bool, error)
}

// UserRepository persists users. Users are created on first authentication.
type UserRepository interface {
	UpsertUser(ctx context.Context, user *internal.User) error
	GetUser(ctx context.Context, id string) (*internal.User, error)
}
