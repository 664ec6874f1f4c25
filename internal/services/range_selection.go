package services

import (
	"github.com/terraincognita07/rangepicker/internal/calendar"
)

type SelectionState string

const (
	SelectionEmpty   SelectionState = "empty"
	SelectionPartial SelectionState = "partial"
	SelectionFull    SelectionState = "full"
)

// DateRange is the selected range. End is never set without Start. Start is
// not guaranteed to precede End: the second click is stored as clicked.
type DateRange struct {
	Start *calendar.Date
	End   *calendar.Date
}

func NewDateRange(start calendar.Date, end calendar.Date) DateRange {
	return DateRange{Start: datePointer(start), End: datePointer(end)}
}

func (dateRange DateRange) State() SelectionState {
	switch {
	case dateRange.Start == nil:
		return SelectionEmpty
	case dateRange.End == nil:
		return SelectionPartial
	default:
		return SelectionFull
	}
}

func (dateRange DateRange) IsComplete() bool {
	return dateRange.State() == SelectionFull
}

// IsBackwards reports a full range whose end precedes its start.
func (dateRange DateRange) IsBackwards() bool {
	return dateRange.IsComplete() && calendar.IsBefore(*dateRange.End, *dateRange.Start)
}

func (dateRange DateRange) IsStart(date calendar.Date) bool {
	return dateRange.Start != nil && calendar.SameDay(*dateRange.Start, date)
}

func (dateRange DateRange) IsEnd(date calendar.Date) bool {
	return dateRange.End != nil && calendar.SameDay(*dateRange.End, date)
}

// Contains is the "painted as inside the range" test: both bounds count.
func (dateRange DateRange) Contains(date calendar.Date) bool {
	if !dateRange.IsComplete() {
		return false
	}
	inside, _ := calendar.Between(date, *dateRange.Start, *dateRange.End, calendar.Inclusive)
	return inside
}

func (dateRange DateRange) Clone() DateRange {
	clone := DateRange{}
	if dateRange.Start != nil {
		clone.Start = datePointer(*dateRange.Start)
	}
	if dateRange.End != nil {
		clone.End = datePointer(*dateRange.End)
	}
	return clone
}

// RangeSelection evolves a DateRange one click at a time:
// empty -> partial -> full -> partial (restarted at the click) -> ...
type RangeSelection struct {
	current  DateRange
	onUpdate func(DateRange)
}

// NewRangeSelection drops an End supplied without a Start.
func NewRangeSelection(initial DateRange, onUpdate func(DateRange)) *RangeSelection {
	initial = initial.Clone()
	if initial.Start == nil {
		initial.End = nil
	}
	return &RangeSelection{current: initial, onUpdate: onUpdate}
}

func (selection *RangeSelection) Range() DateRange {
	return selection.current.Clone()
}

func (selection *RangeSelection) State() SelectionState {
	return selection.current.State()
}

// OnDayClicked applies exactly one transition. When the click completes the
// range the update callback runs after the new range is stored; a panic in
// the callback is not recovered here.
func (selection *RangeSelection) OnDayClicked(date calendar.Date) {
	switch selection.current.State() {
	case SelectionEmpty:
		selection.current = selection.fromEmpty(date)
	case SelectionPartial:
		selection.current = selection.fromPartial(date)
	case SelectionFull:
		selection.current = selection.fromFull(date)
	}

	if selection.current.IsComplete() {
		selection.notify()
	}
}

// Clear returns to the empty state without notifying.
func (selection *RangeSelection) Clear() {
	selection.current = DateRange{}
}

func (selection *RangeSelection) notify() {
	if selection.onUpdate == nil {
		return
	}
	selection.onUpdate(selection.current.Clone())
}

func (selection *RangeSelection) fromEmpty(date calendar.Date) DateRange {
	return DateRange{Start: datePointer(date)}
}

func (selection *RangeSelection) fromPartial(date calendar.Date) DateRange {
	return DateRange{Start: selection.current.Start, End: datePointer(date)}
}

func (selection *RangeSelection) fromFull(date calendar.Date) DateRange {
	return DateRange{Start: datePointer(date)}
}

func datePointer(date calendar.Date) *calendar.Date {
	return &date
}
