// Package weekly converts between recurring weekly slots and concrete
// calendar intervals anchored to the current week.
package weekly

import (
	"errors"
	"time"
)

var ErrInvalidSpan = errors.New("event must last at least one whole hour")

// Slot is the stored shape: Day is 0 (Sunday) through 6.
type Slot struct {
	Day       int
	StartHour int
	Duration  int
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// Decode places slot in the week of now, keeping now's location. Slots on a
// weekday earlier than now's land in the past part of the same week.
func Decode(slot Slot, now time.Time) Interval {
	offset := slot.Day - int(now.Weekday())
	start := time.Date(now.Year(), now.Month(), now.Day()+offset, slot.StartHour, 0, 0, 0, now.Location())

	return Interval{
		Start: start,
		End:   start.Add(time.Duration(slot.Duration) * time.Hour),
	}
}

// Encode reads weekday and hour of start as seen in loc. Partial hours of
// the span are truncated.
func Encode(start, end time.Time, loc *time.Location) (Slot, error) {
	if loc == nil {
		loc = time.UTC
	}
	if end.Before(start) {
		return Slot{}, ErrInvalidSpan
	}

	local := start.In(loc)
	hours := int(end.Sub(start) / time.Hour)
	if hours < 1 {
		return Slot{}, ErrInvalidSpan
	}

	return Slot{
		Day:       int(local.Weekday()),
		StartHour: local.Hour(),
		Duration:  hours,
	}, nil
}
