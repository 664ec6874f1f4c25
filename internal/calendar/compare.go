package calendar

import (
	"errors"
	"fmt"
)

// Inclusivity selects which bounds of a Between test count as inside.
// The left character governs from, the right character governs to.
type Inclusivity string

const (
	Exclusive Inclusivity = "()"
	Inclusive Inclusivity = "[]"
	LeftOpen  Inclusivity = "(]"
	RightOpen Inclusivity = "[)"

	DefaultInclusivity = Exclusive
)

// ErrInvalidInclusivity is a contract violation by the caller, not a
// runtime condition.
var ErrInvalidInclusivity = errors.New("inclusivity must be one of (), [], (], [)")

func ParseInclusivity(raw string) (Inclusivity, error) {
	mode := Inclusivity(raw)
	if !mode.Valid() {
		return "", fmt.Errorf("%w: got %q", ErrInvalidInclusivity, raw)
	}
	return mode, nil
}

func (mode Inclusivity) Valid() bool {
	switch mode {
	case Exclusive, Inclusive, LeftOpen, RightOpen:
		return true
	default:
		return false
	}
}

func SameDay(a Date, b Date) bool {
	return a.Year == b.Year && a.Month == b.Month && a.Day == b.Day
}

func IsBefore(a Date, b Date) bool {
	return compareDates(a, b) < 0
}

func IsAfter(a Date, b Date) bool {
	return compareDates(a, b) > 0
}

// Between reports whether date lies between from and to under mode.
// from is expected to be the earlier bound; a reversed pair never contains
// anything but possibly its endpoints.
func Between(date Date, from Date, to Date, mode Inclusivity) (bool, error) {
	if !mode.Valid() {
		return false, fmt.Errorf("%w: got %q", ErrInvalidInclusivity, string(mode))
	}

	fromInclusive := mode[0] == '['
	toInclusive := mode[1] == ']'

	afterFrom := IsBefore(from, date) || (fromInclusive && SameDay(from, date))
	beforeTo := IsAfter(to, date) || (toInclusive && SameDay(to, date))
	return afterFrom && beforeTo, nil
}

func compareDates(a Date, b Date) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(int(a.Month) - int(b.Month))
	default:
		return sign(a.Day - b.Day)
	}
}

func sign(value int) int {
	switch {
	case value < 0:
		return -1
	case value > 0:
		return 1
	default:
		return 0
	}
}
