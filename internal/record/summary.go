package record

import (
	"math"
	"time"

	"github.com/tteslee/fundamental/internal"
)

// DaySleepMinutes sums the durations of the sleep records in one day bucket.
func DaySleepMinutes(records []internal.Record) int {
	total := 0
	for _, r := range records {
		if r.Type == internal.TypeSleep && r.Duration != nil {
			total += *r.Duration
		}
	}
	return total
}

// AverageSleepMinutes is the mean sleep duration over all sleep records in
// the set, 0 when there are none.
func AverageSleepMinutes(records []internal.Record) float64 {
	total := 0
	count := 0
	for _, r := range records {
		if r.Type == internal.TypeSleep && r.Duration != nil {
			total += *r.Duration
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// DailyView is the payload of the daily timeline endpoint.
type DailyView struct {
	Date          time.Time         `json:"date"`
	SleepDuration string            `json:"sleep_duration"`
	Records       []internal.Record `json:"records"`
}

// WeeklyView is the payload of the weekly timeline endpoint.
type WeeklyView struct {
	WeekStart        time.Time      `json:"week_start"`
	WeekEnd          time.Time      `json:"week_end"`
	DailyRecords     []DailyRecords `json:"daily_records"`
	AverageSleepTime string         `json:"average_sleep_time"`
}

// BuildDailyView buckets records into date's day and attaches the formatted
// sleep total.
func BuildDailyView(records []internal.Record, date time.Time, logger internal.Logger) DailyView {
	bucket := DayBucket(records, date, logger)
	return DailyView{
		Date:          DayStart(date),
		SleepDuration: FormatDuration(DaySleepMinutes(bucket)),
		Records:       bucket,
	}
}

// BuildWeeklyView buckets records into the week containing date and attaches
// the formatted average sleep duration over the week's sleep records.
func BuildWeeklyView(records []internal.Record, date time.Time, logger internal.Logger) WeeklyView {
	days := WeekBuckets(records, date, logger)

	var weekRecords []internal.Record
	for _, d := range days {
		weekRecords = append(weekRecords, d.Records...)
	}

	avg := AverageSleepMinutes(weekRecords)
	return WeeklyView{
		WeekStart:        WeekStart(date),
		WeekEnd:          WeekEnd(date),
		DailyRecords:     days,
		AverageSleepTime: FormatDuration(int(math.Round(avg))),
	}
}
