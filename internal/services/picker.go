package services

import (
	"time"

	"github.com/terraincognita07/rangepicker/internal/calendar"
)

const DefaultRangeSpanDays = 20

type PickerOptions struct {
	InitialRange    *DateRange
	OnUpdate        func(DateRange)
	Clock           Clock
	Location        *time.Location
	DefaultSpanDays int
}

// Picker is one dual-month range picker: a view anchored on a month plus the
// selection state machine. It is not safe for concurrent use.
type Picker struct {
	view      *DualMonthView
	selection *RangeSelection
	clock     Clock
	location  *time.Location
}

// NewPicker anchors the view on the current month. Missing range boundaries
// default independently to today and today plus the span. When the
// resulting range is complete, OnUpdate fires once before NewPicker returns.
func NewPicker(options PickerOptions) *Picker {
	clock := options.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	location := options.Location
	if location == nil {
		location = time.Local
	}
	spanDays := options.DefaultSpanDays
	if spanDays <= 0 {
		spanDays = DefaultRangeSpanDays
	}

	today := TodayAt(clock, location)
	initial := defaultPickerRange(options.InitialRange, today, spanDays)

	picker := &Picker{
		view:      NewDualMonthView(today.MonthOf()),
		selection: NewRangeSelection(initial, options.OnUpdate),
		clock:     clock,
		location:  location,
	}
	if initial.IsComplete() {
		picker.selection.notify()
	}
	return picker
}

func defaultPickerRange(initial *DateRange, today calendar.Date, spanDays int) DateRange {
	resolved := DateRange{}
	if initial != nil {
		resolved = initial.Clone()
	}
	if resolved.Start == nil {
		resolved.Start = datePointer(today)
	}
	if resolved.End == nil {
		resolved.End = datePointer(today.AddDays(spanDays))
	}
	return resolved
}

func (picker *Picker) Anchor() calendar.Month {
	return picker.view.Anchor()
}

func (picker *Picker) View() *DualMonthView {
	return picker.view
}

func (picker *Picker) CurrentGrid() calendar.MonthGrid {
	return picker.view.CurrentGrid()
}

func (picker *Picker) NextGrid() calendar.MonthGrid {
	return picker.view.NextGrid()
}

func (picker *Picker) Range() DateRange {
	return picker.selection.Range()
}

func (picker *Picker) State() SelectionState {
	return picker.selection.State()
}

func (picker *Picker) Today() calendar.Date {
	return TodayAt(picker.clock, picker.location)
}

func (picker *Picker) GoToPreviousMonth() {
	picker.view.GoToPreviousMonth()
}

func (picker *Picker) GoToNextMonth() {
	picker.view.GoToNextMonth()
}

// ShowMonth moves the anchor directly, e.g. when a host restores a month
// from a query string.
func (picker *Picker) ShowMonth(anchor calendar.Month) {
	picker.view.SetAnchor(anchor)
}

func (picker *Picker) OnDayClicked(panel Panel, day int) error {
	date, err := picker.view.ResolveDay(panel, day)
	if err != nil {
		return err
	}
	picker.selection.OnDayClicked(date)
	return nil
}

func (picker *Picker) Reset() {
	picker.selection.Clear()
}
