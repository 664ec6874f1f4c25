package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/rangepicker/internal/calendar"
)

func newTestPicker(t *testing.T, initial *DateRange, updates *[]DateRange) *Picker {
	t.Helper()

	return NewPicker(PickerOptions{
		InitialRange: initial,
		OnUpdate: func(dateRange DateRange) {
			if updates != nil {
				*updates = append(*updates, dateRange)
			}
		},
		Clock:    FixedClock{At: time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)},
		Location: time.UTC,
	})
}

func TestNewPickerDefaultsToTodayPlusTwentyDays(t *testing.T) {
	t.Parallel()

	updates := make([]DateRange, 0)
	picker := newTestPicker(t, nil, &updates)

	if got := RangeLabel(picker.Range()); got != "2025-03-10..2025-03-30" {
		t.Fatalf("expected default range 2025-03-10..2025-03-30, got %s", got)
	}
	if picker.Anchor() != (calendar.Month{Year: 2025, Month: time.March}) {
		t.Fatalf("expected anchor March 2025, got %s", picker.Anchor())
	}
	if len(updates) != 1 {
		t.Fatalf("expected one mount update, got %d", len(updates))
	}
	if got := RangeLabel(updates[0]); got != "2025-03-10..2025-03-30" {
		t.Fatalf("expected mount update with default range, got %s", got)
	}
}

func TestNewPickerDefaultsMissingBoundsIndependently(t *testing.T) {
	t.Parallel()

	start := mustDate(t, "2025-01-02")
	picker := newTestPicker(t, &DateRange{Start: &start}, nil)
	if got := RangeLabel(picker.Range()); got != "2025-01-02..2025-03-30" {
		t.Fatalf("expected end to default on its own, got %s", got)
	}

	end := mustDate(t, "2025-02-01")
	picker = newTestPicker(t, &DateRange{End: &end}, nil)
	if got := RangeLabel(picker.Range()); got != "2025-03-10..2025-02-01" {
		t.Fatalf("expected start to default on its own, got %s", got)
	}
	if !picker.Range().IsBackwards() {
		t.Fatal("expected defaulted start after supplied end to be backwards")
	}
}

func TestNewPickerHonoursCustomSpan(t *testing.T) {
	t.Parallel()

	picker := NewPicker(PickerOptions{
		Clock:           FixedClock{At: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)},
		Location:        time.UTC,
		DefaultSpanDays: 7,
	})
	if got := RangeLabel(picker.Range()); got != "2025-03-10..2025-03-17" {
		t.Fatalf("expected seven day default span, got %s", got)
	}
}

func TestPickerClicksAcrossPanels(t *testing.T) {
	t.Parallel()

	updates := make([]DateRange, 0)
	picker := newTestPicker(t, nil, &updates)

	if err := picker.OnDayClicked(PanelCurrent, 12); err != nil {
		t.Fatalf("click current panel: %v", err)
	}
	if picker.State() != SelectionPartial {
		t.Fatalf("expected partial after restart click, got %s", picker.State())
	}

	if err := picker.OnDayClicked(PanelNext, 5); err != nil {
		t.Fatalf("click next panel: %v", err)
	}
	if got := RangeLabel(picker.Range()); got != "2025-03-12..2025-04-05" {
		t.Fatalf("expected 2025-03-12..2025-04-05, got %s", got)
	}
	if len(updates) != 2 {
		t.Fatalf("expected mount update plus one completion, got %d", len(updates))
	}
}

func TestPickerRejectedClickKeepsState(t *testing.T) {
	t.Parallel()

	picker := newTestPicker(t, nil, nil)
	before := RangeLabel(picker.Range())

	if err := picker.OnDayClicked(PanelNext, 31); !errors.Is(err, ErrPickerDayOutOfRange) {
		t.Fatalf("expected ErrPickerDayOutOfRange for April 31, got %v", err)
	}
	if got := RangeLabel(picker.Range()); got != before {
		t.Fatalf("expected range %s to be unchanged, got %s", before, got)
	}
}

func TestPickerNavigationKeepsSelection(t *testing.T) {
	t.Parallel()

	picker := newTestPicker(t, nil, nil)
	picker.GoToNextMonth()
	picker.GoToNextMonth()
	picker.GoToPreviousMonth()

	if picker.Anchor() != (calendar.Month{Year: 2025, Month: time.April}) {
		t.Fatalf("expected anchor April 2025, got %s", picker.Anchor())
	}
	if got := RangeLabel(picker.Range()); got != "2025-03-10..2025-03-30" {
		t.Fatalf("expected navigation not to touch the range, got %s", got)
	}

	picker.ShowMonth(calendar.Month{Year: 2024, Month: 14})
	if picker.Anchor() != (calendar.Month{Year: 2025, Month: time.February}) {
		t.Fatalf("expected overflowing month to normalize to February 2025, got %s", picker.Anchor())
	}
}

func TestPickerResetEmptiesSelection(t *testing.T) {
	t.Parallel()

	updates := make([]DateRange, 0)
	picker := newTestPicker(t, nil, &updates)
	picker.Reset()

	if picker.State() != SelectionEmpty {
		t.Fatalf("expected empty after reset, got %s", picker.State())
	}
	if len(updates) != 1 {
		t.Fatalf("expected reset to stay silent, got %d updates", len(updates))
	}
}

func TestPickerPanelsFlagTodayAndRange(t *testing.T) {
	t.Parallel()

	picker := newTestPicker(t, nil, nil)
	panels := picker.Panels()
	if len(panels) != 2 {
		t.Fatalf("expected two panels, got %d", len(panels))
	}

	current := panels[0]
	if len(current.Cells) != calendar.GridCells {
		t.Fatalf("expected %d cells, got %d", calendar.GridCells, len(current.Cells))
	}
	if len(current.Weeks()) != calendar.GridWeeks {
		t.Fatalf("expected %d weeks, got %d", calendar.GridWeeks, len(current.Weeks()))
	}

	// March 2025 starts on Saturday, so the 10th sits at index 15.
	today := current.Cells[15]
	if today.Day != 10 || !today.IsToday || !today.IsStart || !today.InRange {
		t.Fatalf("expected index 15 to be today and range start, got %#v", today)
	}
	if !current.Cells[0].Blank {
		t.Fatalf("expected leading cell to be blank, got %#v", current.Cells[0])
	}
	if cell := current.Cells[35]; cell.Day != 30 || !cell.IsEnd {
		t.Fatalf("expected index 35 to be the range end on the 30th, got %#v", cell)
	}

	next := panels[1]
	if next.Month != (calendar.Month{Year: 2025, Month: time.April}) {
		t.Fatalf("expected right panel April 2025, got %s", next.Month)
	}
	for _, cell := range next.Cells {
		if cell.InRange {
			t.Fatalf("expected no April day in range, got %#v", cell)
		}
	}
}
