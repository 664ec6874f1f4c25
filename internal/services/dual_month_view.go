package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/rangepicker/internal/calendar"
)

var (
	ErrPickerPanelInvalid  = errors.New("picker panel invalid")
	ErrPickerDayOutOfRange = errors.New("picker day out of range")
)

type Panel string

const (
	PanelCurrent Panel = "current"
	PanelNext    Panel = "next"
)

func ParsePanel(raw string) (Panel, error) {
	switch Panel(strings.ToLower(strings.TrimSpace(raw))) {
	case PanelCurrent:
		return PanelCurrent, nil
	case PanelNext:
		return PanelNext, nil
	default:
		return "", ErrPickerPanelInvalid
	}
}

// DualMonthView shows the anchor month on the left and the month after it on
// the right. Both grids are regenerated whenever the anchor moves.
type DualMonthView struct {
	anchor      calendar.Month
	currentGrid calendar.MonthGrid
	nextGrid    calendar.MonthGrid
}

func NewDualMonthView(anchor calendar.Month) *DualMonthView {
	view := &DualMonthView{anchor: calendar.MonthOf(anchor.Year, anchor.Month)}
	view.regenerate()
	return view
}

func (view *DualMonthView) Anchor() calendar.Month {
	return view.anchor
}

func (view *DualMonthView) CurrentMonth() calendar.Month {
	return view.anchor
}

func (view *DualMonthView) NextMonth() calendar.Month {
	return view.anchor.AddMonths(1)
}

func (view *DualMonthView) CurrentGrid() calendar.MonthGrid {
	return view.currentGrid
}

func (view *DualMonthView) NextGrid() calendar.MonthGrid {
	return view.nextGrid
}

func (view *DualMonthView) CurrentLabel() calendar.Month {
	return view.anchor
}

// NextLabel advances the anchor by one month, exactly like the grid.
func (view *DualMonthView) NextLabel() calendar.Month {
	return view.anchor.AddMonths(1)
}

func (view *DualMonthView) GoToPreviousMonth() {
	view.SetAnchor(view.anchor.AddMonths(-1))
}

func (view *DualMonthView) GoToNextMonth() {
	view.SetAnchor(view.anchor.AddMonths(1))
}

func (view *DualMonthView) SetAnchor(anchor calendar.Month) {
	view.anchor = calendar.MonthOf(anchor.Year, anchor.Month)
	view.regenerate()
}

func (view *DualMonthView) PanelMonth(panel Panel) (calendar.Month, error) {
	switch panel {
	case PanelCurrent:
		return view.CurrentMonth(), nil
	case PanelNext:
		return view.NextMonth(), nil
	default:
		return calendar.Month{}, ErrPickerPanelInvalid
	}
}

func (view *DualMonthView) PanelGrid(panel Panel) (calendar.MonthGrid, error) {
	switch panel {
	case PanelCurrent:
		return view.currentGrid, nil
	case PanelNext:
		return view.nextGrid, nil
	default:
		return calendar.MonthGrid{}, ErrPickerPanelInvalid
	}
}

// ResolveDay maps a clicked day number to a date. Days on the right panel
// are resolved by adding one month to (anchor year, anchor month, day) with
// clamping month arithmetic.
func (view *DualMonthView) ResolveDay(panel Panel, day int) (calendar.Date, error) {
	grid, err := view.PanelGrid(panel)
	if err != nil {
		return calendar.Date{}, err
	}
	if !grid.HasDay(day) {
		return calendar.Date{}, ErrPickerDayOutOfRange
	}

	if panel == PanelNext {
		return calendar.AddMonths(view.anchor.Year, view.anchor.Month, day, 1), nil
	}
	return calendar.Date{Year: view.anchor.Year, Month: view.anchor.Month, Day: day}, nil
}

func (view *DualMonthView) regenerate() {
	view.currentGrid = calendar.GenerateGrid(view.anchor.Year, view.anchor.Month)
	next := view.anchor.AddMonths(1)
	view.nextGrid = calendar.GenerateGrid(next.Year, next.Month)
}
