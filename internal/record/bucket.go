package record

import (
	"sort"
	"time"

	"github.com/tteslee/fundamental/internal"
)

// DayStart returns midnight of date's calendar day in its location.
func DayStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DayEnd returns the last representable instant of date's calendar day.
func DayEnd(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999000000, date.Location())
}

// WeekStart returns midnight of the Monday on or before date.
func WeekStart(date time.Time) time.Time {
	d := DayStart(date)
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns midnight of the Sunday ending the week of date.
func WeekEnd(date time.Time) time.Time {
	return WeekStart(date).AddDate(0, 0, 6)
}

// DayBucket returns the records whose start time falls within date's
// calendar day, sorted ascending by start time. Records with a missing
// start time are skipped rather than failing the whole bucket.
func DayBucket(records []internal.Record, date time.Time, logger internal.Logger) []internal.Record {
	dayStart := DayStart(date)
	dayEnd := DayEnd(date)

	bucket := []internal.Record{}
	for _, r := range records {
		if r.StartTime.IsZero() {
			if logger != nil {
				logger.Warnf("record %s has no start time, skipping", r.ID)
			}
			continue
		}
		if r.StartTime.Before(dayStart) || r.StartTime.After(dayEnd) {
			continue
		}
		bucket = append(bucket, r)
	}

	sort.Slice(bucket, func(i, j int) bool {
		return bucket[i].StartTime.Before(bucket[j].StartTime)
	})
	return bucket
}

// DailyRecords is one day slot of a weekly view.
type DailyRecords struct {
	Date          time.Time         `json:"date"`
	SleepDuration string            `json:"sleep_duration"`
	Records       []internal.Record `json:"records"`
}

// WeekBuckets partitions records into the seven day slots of the week
// containing date, Monday through Sunday.
func WeekBuckets(records []internal.Record, date time.Time, logger internal.Logger) []DailyRecords {
	weekStart := WeekStart(date)
	days := make([]DailyRecords, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		dayRecords := DayBucket(records, day, logger)
		days = append(days, DailyRecords{
			Date:          day,
			SleepDuration: FormatDuration(DaySleepMinutes(dayRecords)),
			Records:       dayRecords,
		})
	}
	return days
}
