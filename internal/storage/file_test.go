package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tteslee/fundamental/internal"
)

func setupFileStorage(t *testing.T) *FileStorage {
	dir := t.TempDir()
	s, err := NewFileStorage(filepath.Join(dir, "records.json"), filepath.Join(dir, "users.json"), internal.NewNopLogger())
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newSleep(id, userID string, start time.Time) *internal.Record {
	minutes := 480
	end := start.Add(8 * time.Hour)
	now := time.Now()
	return &internal.Record{
		ID: id, Type: internal.TypeSleep, UserID: userID,
		StartTime: start, EndTime: &end, Duration: &minutes,
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestInsertAndListRecords(t *testing.T) {
	s := setupFileStorage(t)
	ctx := context.Background()
	now := time.Now()

	assert.NoError(t, s.InsertRecord(ctx, newSleep("r1", "u1", now.AddDate(0, 0, -2))))
	assert.NoError(t, s.InsertRecord(ctx, newSleep("r2", "u1", now.AddDate(0, 0, -1))))
	assert.NoError(t, s.InsertRecord(ctx, newSleep("r3", "u2", now)))

	records, err := s.ListRecords(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "r2", records[0].ID, "newest first")
	assert.Equal(t, "r1", records[1].ID)

	empty, err := s.ListRecords(ctx, "nobody")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListRecordsByRange(t *testing.T) {
	s := setupFileStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)

	for i := 0; i < 5; i++ {
		assert.NoError(t, s.InsertRecord(ctx, newSleep([]string{"a", "b", "c", "d", "e"}[i], "u1", base.AddDate(0, 0, i))))
	}

	records, err := s.ListRecordsByRange(ctx, "u1", base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "b", records[0].ID, "ranges are ascending")
	assert.Equal(t, "d", records[2].ID)
}

func TestUpdateRecord_OwnershipIsolation(t *testing.T) {
	s := setupFileStorage(t)
	ctx := context.Background()
	assert.NoError(t, s.InsertRecord(ctx, newSleep("r1", "owner", time.Now())))

	fields := RecordFields{Type: internal.TypeFood, StartTime: time.Now(), Memo: "hijacked"}

	// Foreign owner and missing id must be indistinguishable.
	_, matched, err := s.UpdateRecord(ctx, "r1", "intruder", fields)
	assert.NoError(t, err)
	assert.False(t, matched)
	_, matched, err = s.UpdateRecord(ctx, "missing", "owner", fields)
	assert.NoError(t, err)
	assert.False(t, matched)

	records, _ := s.ListRecords(ctx, "owner")
	assert.Equal(t, internal.TypeSleep, records[0].Type, "record untouched by foreign update")

	updated, matched, err := s.UpdateRecord(ctx, "r1", "owner", fields)
	assert.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, internal.TypeFood, updated.Type)
	assert.Equal(t, "hijacked", updated.Memo)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestDeleteRecord_OwnershipIsolation(t *testing.T) {
	s := setupFileStorage(t)
	ctx := context.Background()
	assert.NoError(t, s.InsertRecord(ctx, newSleep("r1", "owner", time.Now())))

	matched, err := s.DeleteRecord(ctx, "r1", "intruder")
	assert.NoError(t, err)
	assert.False(t, matched)

	matched, err = s.DeleteRecord(ctx, "missing", "owner")
	assert.NoError(t, err)
	assert.False(t, matched)

	records, _ := s.ListRecords(ctx, "owner")
	assert.Len(t, records, 1)

	matched, err = s.DeleteRecord(ctx, "r1", "owner")
	assert.NoError(t, err)
	assert.True(t, matched)

	records, _ = s.ListRecords(ctx, "owner")
	assert.Empty(t, records)
}

func TestUpsertAndGetUser(t *testing.T) {
	s := setupFileStorage(t)
	ctx := context.Background()
	now := time.Now()

	u := &internal.User{ID: "u1", Email: "a@b.c", Name: "A", CreatedAt: now, UpdatedAt: now}
	assert.NoError(t, s.UpsertUser(ctx, u))

	got, err := s.GetUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)

	u.Name = "B"
	assert.NoError(t, s.UpsertUser(ctx, u))
	got, _ = s.GetUser(ctx, "u1")
	assert.Equal(t, "B", got.Name)

	_, err = s.GetUser(ctx, "missing")
	assert.Error(t, err)
}

func TestFileStorage_Reload(t *testing.T) {
	dir := t.TempDir()
	recordsFile := filepath.Join(dir, "records.json")
	usersFile := filepath.Join(dir, "users.json")
	logger := internal.NewNopLogger()

	s, err := NewFileStorage(recordsFile, usersFile, logger)
	assert.NoError(t, err)
	assert.NoError(t, s.InsertRecord(context.Background(), newSleep("r1", "u1", time.Now())))
	assert.NoError(t, s.Close())

	reloaded, err := NewFileStorage(recordsFile, usersFile, logger)
	assert.NoError(t, err)
	defer reloaded.Close()

	records, err := reloaded.ListRecords(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)
}
