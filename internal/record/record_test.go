package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tteslee/fundamental/internal"
)

func TestNew_Sleep(t *testing.T) {
	start := time.Date(2024, 1, 15, 23, 20, 0, 0, time.Local)
	end := time.Date(2024, 1, 15, 7, 20, 0, 0, time.Local)

	got, err := New("u1", Input{Type: internal.TypeSleep, StartTime: start, EndTime: &end, Memo: "slept well"})
	assert.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 480, *got.Duration)
	assert.Equal(t, 16, got.EndTime.Day())
	assert.Equal(t, "slept well", got.Memo)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestNew_SleepWithNextDayEnd(t *testing.T) {
	start := time.Date(2024, 1, 15, 23, 20, 0, 0, time.Local)
	end := time.Date(2024, 1, 16, 7, 20, 0, 0, time.Local)

	got, err := New("u1", Input{Type: internal.TypeSleep, StartTime: start, EndTime: &end})
	assert.NoError(t, err)
	assert.Equal(t, 480, *got.Duration)
	assert.Equal(t, 16, got.EndTime.Day(), "an end already on the next day must not be advanced again")
	assert.Equal(t, 8*time.Hour, got.EndTime.Sub(got.StartTime))
}

func TestNew_PointType(t *testing.T) {
	got, err := New("u1", Input{Type: internal.TypeFood, StartTime: time.Now()})
	assert.NoError(t, err)
	assert.Nil(t, got.EndTime)
	assert.Nil(t, got.Duration)
}

func TestNew_InvalidType(t *testing.T) {
	_, err := New("u1", Input{Type: "exercise", StartTime: time.Now()})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
}

func TestNew_MissingStartTime(t *testing.T) {
	_, err := New("u1", Input{Type: internal.TypeFood})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "start_time", verr.Field)
}

func TestNew_EndTimeOnPointTypeRejected(t *testing.T) {
	end := time.Now()
	_, err := New("u1", Input{Type: internal.TypeMedication, StartTime: time.Now(), EndTime: &end})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_time", verr.Field)
}

func TestNew_SleepRequiresEndTime(t *testing.T) {
	_, err := New("u1", Input{Type: internal.TypeSleep, StartTime: time.Now()})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_time", verr.Field)
}

func TestReplace_KeepsIdentityUnset(t *testing.T) {
	start := time.Date(2024, 1, 15, 8, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 15, 14, 30, 0, 0, time.Local)

	got, err := Replace(Input{Type: internal.TypeSleep, StartTime: start, EndTime: &end})
	assert.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.Empty(t, got.UserID)
	assert.Equal(t, 390, *got.Duration)
}
