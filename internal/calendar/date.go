// Package calendar holds the pure date logic behind the range picker:
// date values, comparisons, clamping month arithmetic and month grids.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloudeng.io/datetime"
)

const dateLayout = "2006-01-02"

var ErrDateInvalid = errors.New("invalid calendar date")

// Date is a proleptic Gregorian calendar day. Values built through NewDate
// or DateOf are always normalized.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes overflowing components the way time.Date does,
// so NewDate(2024, time.February, 30) is March 1st 2024.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

func DateOf(value time.Time, location *time.Location) Date {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(raw string) (Date, error) {
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrDateInvalid, raw)
	}
	return DateOf(parsed, time.UTC), nil
}

// Time returns midnight of the date in location (UTC when nil).
func (date Date) Time(location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, location)
}

func (date Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year, int(date.Month), date.Day)
}

func (date Date) IsZero() bool {
	return date == Date{}
}

func (date Date) Weekday() time.Weekday {
	return WeekdayOf(date.Year, date.Month, date.Day)
}

func (date Date) AddDays(days int) Date {
	return NewDate(date.Year, date.Month, date.Day+days)
}

func (date Date) AddMonths(months int) Date {
	return AddMonths(date.Year, date.Month, date.Day, months)
}

func (date Date) MonthOf() Month {
	return Month{Year: date.Year, Month: date.Month}
}

// AddMonths moves (year, month, day) by months calendar months. The day is
// clamped to the length of the target month instead of overflowing into the
// following one: January 31 plus one month is February 28 (29 in leap years).
// The day is not normalized against the source month first.
func AddMonths(year int, month time.Month, day int, months int) Date {
	target := MonthOf(year, month).AddMonths(months)
	if day < 1 {
		day = 1
	}
	if last := DaysInMonth(target.Year, target.Month); day > last {
		day = last
	}
	return Date{Year: target.Year, Month: target.Month, Day: day}
}

// DaysInMonth reports the month length under Gregorian leap-year rules.
// Overflowing months are normalized first.
func DaysInMonth(year int, month time.Month) int {
	normalized := MonthOf(year, month)
	return datetime.DaysInMonth(normalized.Year, datetime.Month(normalized.Month))
}

func IsLeap(year int) bool {
	return datetime.IsLeap(year)
}

func WeekdayOf(year int, month time.Month, day int) time.Weekday {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
}
