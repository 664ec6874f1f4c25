package services

import (
	"github.com/terraincognita07/rangepicker/internal/calendar"
)

// PickerCell is one of the 42 grid positions of a panel, with the flags a
// renderer needs to highlight it. Blank cells have Day == 0.
type PickerCell struct {
	Index   int
	Day     int
	Date    calendar.Date
	Blank   bool
	IsToday bool
	IsStart bool
	IsEnd   bool
	InRange bool
}

type PanelView struct {
	Panel      Panel
	Month      calendar.Month
	LabelMonth calendar.Month
	Cells      []PickerCell
}

func (panel PanelView) Weeks() [][]PickerCell {
	weeks := make([][]PickerCell, 0, calendar.GridWeeks)
	for start := 0; start < len(panel.Cells); start += 7 {
		end := start + 7
		if end > len(panel.Cells) {
			end = len(panel.Cells)
		}
		weeks = append(weeks, panel.Cells[start:end])
	}
	return weeks
}

func (picker *Picker) Panels() []PanelView {
	today := picker.Today()
	dateRange := picker.selection.Range()
	view := picker.view

	return []PanelView{
		buildPanelView(view, PanelCurrent, view.CurrentMonth(), view.CurrentLabel(), view.CurrentGrid(), dateRange, today),
		buildPanelView(view, PanelNext, view.NextMonth(), view.NextLabel(), view.NextGrid(), dateRange, today),
	}
}

func buildPanelView(view *DualMonthView, panel Panel, month calendar.Month, label calendar.Month, grid calendar.MonthGrid, dateRange DateRange, today calendar.Date) PanelView {
	cells := make([]PickerCell, 0, calendar.GridCells)
	for index, day := range grid {
		if day == 0 {
			cells = append(cells, PickerCell{Index: index, Blank: true})
			continue
		}

		date, err := view.ResolveDay(panel, day)
		if err != nil {
			cells = append(cells, PickerCell{Index: index, Blank: true})
			continue
		}
		cells = append(cells, PickerCell{
			Index:   index,
			Day:     day,
			Date:    date,
			IsToday: calendar.SameDay(date, today),
			IsStart: dateRange.IsStart(date),
			IsEnd:   dateRange.IsEnd(date),
			InRange: dateRange.Contains(date),
		})
	}

	return PanelView{
		Panel:      panel,
		Month:      month,
		LabelMonth: label,
		Cells:      cells,
	}
}
