package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tteslee/fundamental/internal"
)

func TestDraft_SleepFlow(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, SelectingType, d.State())

	assert.NoError(t, d.SelectType(internal.TypeSleep))
	assert.Equal(t, SelectingTime, d.State())

	assert.NoError(t, d.SelectTime(ClockTime{23, 20}, &ClockTime{7, 20}))
	assert.Equal(t, SelectingDate, d.State())

	assert.NoError(t, d.SelectDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, EnteringMemo, d.State())

	assert.NoError(t, d.EnterMemo("long day"))
	assert.Equal(t, Complete, d.State())

	in, err := d.Build()
	assert.NoError(t, err)
	assert.Equal(t, internal.TypeSleep, in.Type)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 20, 0, 0, time.Local), in.StartTime)
	// End is anchored to the selected date; the overnight wrap resolves later.
	assert.Equal(t, time.Date(2024, 1, 15, 7, 20, 0, 0, time.Local), *in.EndTime)
	assert.Equal(t, "long day", in.Memo)

	rec, err := New("u1", in)
	assert.NoError(t, err)
	assert.Equal(t, 480, *rec.Duration)
	assert.Equal(t, 16, rec.EndTime.Day())
}

func TestDraft_PointFlowWithoutEnd(t *testing.T) {
	d := NewDraft()
	assert.NoError(t, d.SelectType(internal.TypeFood))
	assert.NoError(t, d.SelectTime(ClockTime{12, 30}, nil))
	assert.NoError(t, d.SelectDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)))
	assert.NoError(t, d.EnterMemo(""))

	in, err := d.Build()
	assert.NoError(t, err)
	assert.Nil(t, in.EndTime)
}

func TestDraft_StepsOutOfOrder(t *testing.T) {
	d := NewDraft()
	assert.ErrorIs(t, d.SelectTime(ClockTime{8, 0}, nil), ErrWrongStep)
	assert.ErrorIs(t, d.SelectDate(time.Now()), ErrWrongStep)
	assert.ErrorIs(t, d.EnterMemo("x"), ErrWrongStep)
	_, err := d.Build()
	assert.ErrorIs(t, err, ErrWrongStep)

	// A completed draft cannot restart.
	assert.NoError(t, d.SelectType(internal.TypeMedication))
	assert.NoError(t, d.SelectTime(ClockTime{9, 0}, nil))
	assert.NoError(t, d.SelectDate(time.Now()))
	assert.NoError(t, d.EnterMemo(""))
	assert.ErrorIs(t, d.SelectType(internal.TypeFood), ErrWrongStep)
}

func TestDraft_RejectsInvalidSteps(t *testing.T) {
	d := NewDraft()
	assert.Error(t, d.SelectType("banana"))
	assert.Equal(t, SelectingType, d.State(), "failed step must not advance")

	assert.NoError(t, d.SelectType(internal.TypeSleep))
	assert.Error(t, d.SelectTime(ClockTime{25, 0}, &ClockTime{7, 0}))
	assert.Error(t, d.SelectTime(ClockTime{23, 0}, nil), "sleep needs an end time")
	assert.Equal(t, SelectingTime, d.State())

	d2 := NewDraft()
	assert.NoError(t, d2.SelectType(internal.TypeFood))
	assert.Error(t, d2.SelectTime(ClockTime{12, 0}, &ClockTime{13, 0}), "point types cannot carry an end time")
}
