package record

import (
	"errors"
	"time"

	"github.com/tteslee/fundamental/internal"
)

// DraftState is the step an add/edit flow is on. Steps advance strictly
// forward: type, then clock times, then calendar date, then memo.
type DraftState int

const (
	SelectingType DraftState = iota
	SelectingTime
	SelectingDate
	EnteringMemo
	Complete
)

func (s DraftState) String() string {
	switch s {
	case SelectingType:
		return "selecting_type"
	case SelectingTime:
		return "selecting_time"
	case SelectingDate:
		return "selecting_date"
	case EnteringMemo:
		return "entering_memo"
	case Complete:
		return "complete"
	}
	return "unknown"
}

var ErrWrongStep = errors.New("record: draft step out of order")

// ClockTime is a wall-clock reading detached from any calendar date.
type ClockTime struct {
	Hour   int
	Minute int
}

// Draft accumulates the fields of a record across the multi-step add/edit
// flow. A single Draft replaces the scattered per-step state of the source
// UI; each step validates and advances the state or fails without mutation.
type Draft struct {
	state      DraftState
	recordType internal.RecordType
	start      ClockTime
	end        *ClockTime
	date       time.Time
	memo       string
}

func NewDraft() *Draft {
	return &Draft{state: SelectingType}
}

func (d *Draft) State() DraftState {
	return d.state
}

// SelectType records the activity type and moves to time selection.
func (d *Draft) SelectType(t internal.RecordType) error {
	if d.state != SelectingType {
		return ErrWrongStep
	}
	if !t.IsValid() {
		return &ValidationError{Field: "type", Reason: "must be one of sleep, food, medication"}
	}
	d.recordType = t
	d.state = SelectingTime
	return nil
}

// SelectTime records the start clock time, and the end clock time for
// interval types, then moves to date selection.
func (d *Draft) SelectTime(start ClockTime, end *ClockTime) error {
	if d.state != SelectingTime {
		return ErrWrongStep
	}
	if err := validClock(start); err != nil {
		return err
	}
	if d.recordType.IsInterval() {
		if end == nil {
			return &ValidationError{Field: "end_time", Reason: "required for sleep records"}
		}
		if err := validClock(*end); err != nil {
			return err
		}
		e := *end
		d.end = &e
	} else if end != nil {
		return &ValidationError{Field: "end_time", Reason: "not allowed for point-in-time types"}
	}
	d.start = start
	d.state = SelectingDate
	return nil
}

// SelectDate anchors the clock times to a calendar day and moves to the
// memo step.
func (d *Draft) SelectDate(date time.Time) error {
	if d.state != SelectingDate {
		return ErrWrongStep
	}
	if date.IsZero() {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	d.date = date
	d.state = EnteringMemo
	return nil
}

// EnterMemo attaches the optional memo and completes the draft.
func (d *Draft) EnterMemo(memo string) error {
	if d.state != EnteringMemo {
		return ErrWrongStep
	}
	d.memo = memo
	d.state = Complete
	return nil
}

// Build assembles the validated record input from a completed draft. The
// start timestamp combines the selected date with the start clock time; the
// overnight wrap for the end timestamp is handled downstream by New.
func (d *Draft) Build() (Input, error) {
	if d.state != Complete {
		return Input{}, ErrWrongStep
	}
	day := DayStart(d.date)
	start := day.Add(time.Duration(d.start.Hour)*time.Hour + time.Duration(d.start.Minute)*time.Minute)
	in := Input{
		Type:      d.recordType,
		StartTime: start,
		Memo:      d.memo,
	}
	if d.end != nil {
		end := day.Add(time.Duration(d.end.Hour)*time.Hour + time.Duration(d.end.Minute)*time.Minute)
		in.EndTime = &end
	}
	return in, nil
}

func validClock(c ClockTime) error {
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return &ValidationError{Field: "time", Reason: "hour must be 0-23 and minute 0-59"}
	}
	return nil
}
