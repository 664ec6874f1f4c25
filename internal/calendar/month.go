package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const monthLayout = "2006-01"

var ErrMonthInvalid = errors.New("invalid calendar month")

// Month identifies a displayed month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf normalizes month overflow: MonthOf(2024, 13) is January 2025 and
// MonthOf(2024, 0) is December 2023.
func MonthOf(year int, month time.Month) Month {
	offset := int(month) - 1
	year += floorDiv(offset, 12)
	offset = offset - floorDiv(offset, 12)*12
	return Month{Year: year, Month: time.Month(offset + 1)}
}

func CurrentMonth(now time.Time, location *time.Location) Month {
	return DateOf(now, location).MonthOf()
}

func ParseMonth(raw string) (Month, error) {
	parsed, err := time.Parse(monthLayout, strings.TrimSpace(raw))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrMonthInvalid, raw)
	}
	return Month{Year: parsed.Year(), Month: parsed.Month()}, nil
}

func (month Month) AddMonths(months int) Month {
	return MonthOf(month.Year, month.Month+time.Month(months))
}

func (month Month) First() Date {
	return Date{Year: month.Year, Month: month.Month, Day: 1}
}

func (month Month) Last() Date {
	return Date{Year: month.Year, Month: month.Month, Day: month.Days()}
}

func (month Month) Days() int {
	return DaysInMonth(month.Year, month.Month)
}

func (month Month) Contains(date Date) bool {
	return date.Year == month.Year && date.Month == month.Month
}

func (month Month) Grid() MonthGrid {
	return GenerateGrid(month.Year, month.Month)
}

func (month Month) String() string {
	return fmt.Sprintf("%04d-%02d", month.Year, int(month.Month))
}

func floorDiv(value int, divisor int) int {
	quotient := value / divisor
	if value%divisor != 0 && (value < 0) != (divisor < 0) {
		quotient--
	}
	return quotient
}
