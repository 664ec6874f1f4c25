package services

import (
	"time"

	"github.com/terraincognita07/rangepicker/internal/calendar"
)

// Clock supplies "now" so pickers can be driven by a fixed date in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type FixedClock struct {
	At time.Time
}

func (clock FixedClock) Now() time.Time {
	return clock.At
}

func TodayAt(clock Clock, location *time.Location) calendar.Date {
	if clock == nil {
		clock = SystemClock{}
	}
	return calendar.DateOf(clock.Now(), location)
}
