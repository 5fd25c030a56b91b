package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tteslee/fundamental/internal"
)

func sleepRec(id string, start time.Time, minutes int) internal.Record {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return internal.Record{
		ID: id, Type: internal.TypeSleep, UserID: "u1",
		StartTime: start, EndTime: &end, Duration: &minutes,
	}
}

func TestAverageSleepMinutes_NoSleepRecords(t *testing.T) {
	records := []internal.Record{
		rec("f1", internal.TypeFood, time.Now()),
		rec("m1", internal.TypeMedication, time.Now()),
	}
	assert.Equal(t, 0.0, AverageSleepMinutes(records))
	assert.Equal(t, 0.0, AverageSleepMinutes(nil))
}

func TestAverageSleepMinutes(t *testing.T) {
	now := time.Now()
	records := []internal.Record{
		sleepRec("s1", now, 480),
		sleepRec("s2", now, 360),
		rec("f1", internal.TypeFood, now),
	}
	assert.InDelta(t, 420.0, AverageSleepMinutes(records), 0.01)
}

func TestDaySleepMinutes(t *testing.T) {
	now := time.Now()
	records := []internal.Record{
		sleepRec("s1", now, 90),
		sleepRec("s2", now, 400),
		rec("f1", internal.TypeFood, now),
	}
	assert.Equal(t, 490, DaySleepMinutes(records))
	assert.Equal(t, 0, DaySleepMinutes(nil))
}

func TestBuildDailyView(t *testing.T) {
	day := time.Date(2024, 1, 17, 0, 0, 0, 0, time.Local)
	records := []internal.Record{
		sleepRec("s1", time.Date(2024, 1, 17, 23, 0, 0, 0, time.Local), 480),
		rec("other-day", internal.TypeFood, time.Date(2024, 1, 18, 9, 0, 0, 0, time.Local)),
	}

	view := BuildDailyView(records, day, internal.NewNopLogger())
	assert.Equal(t, day, view.Date)
	assert.Len(t, view.Records, 1)
	assert.Equal(t, "08:00", view.SleepDuration)
}

func TestBuildWeeklyView(t *testing.T) {
	wednesday := time.Date(2024, 1, 17, 0, 0, 0, 0, time.Local)
	records := []internal.Record{
		sleepRec("s1", time.Date(2024, 1, 15, 23, 0, 0, 0, time.Local), 480),
		sleepRec("s2", time.Date(2024, 1, 16, 23, 0, 0, 0, time.Local), 360),
	}

	view := BuildWeeklyView(records, wednesday, internal.NewNopLogger())
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), view.WeekStart)
	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.Local), view.WeekEnd)
	assert.Len(t, view.DailyRecords, 7)
	assert.Equal(t, "07:00", view.AverageSleepTime)
	assert.Equal(t, "08:00", view.DailyRecords[0].SleepDuration)
}

func TestBuildWeeklyView_NoSleep(t *testing.T) {
	view := BuildWeeklyView(nil, time.Now(), internal.NewNopLogger())
	assert.Equal(t, "00:00", view.AverageSleepTime)
}
