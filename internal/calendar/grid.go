package calendar

import "time"

const (
	GridWeeks = 6
	GridCells = GridWeeks * 7
)

// MonthGrid is six Sunday-first weeks covering one month. A zero cell is
// blank; any other value is the day number shown in that cell.
type MonthGrid [GridCells]int

// GenerateGrid lays out (year, month) on a 42 cell grid. Overflowing months
// are normalized first, so month 13 of 2024 yields January 2025.
func GenerateGrid(year int, month time.Month) MonthGrid {
	normalized := MonthOf(year, month)
	startDay := int(WeekdayOf(normalized.Year, normalized.Month, 1))
	daysInMonth := DaysInMonth(normalized.Year, normalized.Month)

	var grid MonthGrid
	for index := range grid {
		offset := index - startDay
		if offset >= 0 && offset < daysInMonth {
			grid[index] = offset + 1
		}
	}
	return grid
}

func (grid MonthGrid) DayCount() int {
	count := 0
	for _, day := range grid {
		if day != 0 {
			count++
		}
	}
	return count
}

// FirstDayIndex returns the index of day 1, or -1 for an empty grid.
func (grid MonthGrid) FirstDayIndex() int {
	for index, day := range grid {
		if day != 0 {
			return index
		}
	}
	return -1
}

func (grid MonthGrid) HasDay(day int) bool {
	if day < 1 {
		return false
	}
	for _, cell := range grid {
		if cell == day {
			return true
		}
	}
	return false
}

func (grid MonthGrid) Rows() [GridWeeks][7]int {
	var rows [GridWeeks][7]int
	for index, day := range grid {
		rows[index/7][index%7] = day
	}
	return rows
}
