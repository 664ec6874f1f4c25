package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepicker/internal/calendar"
	"github.com/terraincognita07/rangepicker/internal/models"
	"github.com/terraincognita07/rangepicker/internal/services"
)

const pickerHistoryPageLimit = 10

type pickerCellView struct {
	Day       int
	Date      string
	Blank     bool
	Class     string
	ClickPath string
}

type pickerPanelView struct {
	Panel string
	Label string
	Weeks [][]pickerCellView
}

type historyItemView struct {
	Start     string
	End       string
	Backwards bool
}

type pickerSnapshot struct {
	Anchor string          `json:"anchor"`
	Today  string          `json:"today"`
	State  string          `json:"state"`
	Range  rangePayload    `json:"range"`
	Panels []panelSnapshot `json:"panels"`
}

type rangePayload struct {
	Start     *string `json:"start"`
	End       *string `json:"end"`
	Backwards bool    `json:"backwards"`
}

type panelSnapshot struct {
	Panel string             `json:"panel"`
	Month string             `json:"month"`
	Label string             `json:"label"`
	Grid  calendar.MonthGrid `json:"grid"`
}

type committedRangePayload struct {
	ID          uint      `json:"id"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Backwards   bool      `json:"backwards"`
	Label       string    `json:"label"`
	CommittedAt time.Time `json:"committed_at"`
}

func pickerCellClass(cell services.PickerCell) string {
	if cell.Blank {
		return "picker-cell is-blank"
	}

	classes := []string{"picker-cell"}
	if cell.IsToday {
		classes = append(classes, "is-today")
	}
	if cell.InRange {
		classes = append(classes, "in-range")
	}
	if cell.IsStart {
		classes = append(classes, "is-start")
	}
	if cell.IsEnd {
		classes = append(classes, "is-end")
	}
	return strings.Join(classes, " ")
}

func pickerClickPath(panel services.Panel, day int) string {
	return fmt.Sprintf("/picker/days/%s/%d", panel, day)
}

func (handler *Handler) buildPanelViews(language string, picker *services.Picker) []pickerPanelView {
	panels := picker.Panels()
	views := make([]pickerPanelView, 0, len(panels))
	for _, panel := range panels {
		weeks := make([][]pickerCellView, 0, calendar.GridWeeks)
		for _, week := range panel.Weeks() {
			row := make([]pickerCellView, 0, len(week))
			for _, cell := range week {
				view := pickerCellView{Blank: cell.Blank, Class: pickerCellClass(cell)}
				if !cell.Blank {
					view.Day = cell.Day
					view.Date = cell.Date.String()
					view.ClickPath = pickerClickPath(panel.Panel, cell.Day)
				}
				row = append(row, view)
			}
			weeks = append(weeks, row)
		}

		views = append(views, pickerPanelView{
			Panel: string(panel.Panel),
			Label: handler.i18n.MonthLabel(language, panel.LabelMonth.Year, panel.LabelMonth.Month),
			Weeks: weeks,
		})
	}
	return views
}

func (handler *Handler) weekdayHeaders(language string) []string {
	headers := make([]string, 0, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		headers = append(headers, handler.i18n.WeekdayShort(language, weekday))
	}
	return headers
}

// pickerViewData must be called while holding the session lock.
func (handler *Handler) pickerViewData(language string, picker *services.Picker) fiber.Map {
	dateRange := picker.Range()
	data := fiber.Map{
		"Anchor":    picker.Anchor().String(),
		"State":     string(dateRange.State()),
		"Panels":    handler.buildPanelViews(language, picker),
		"Weekdays":  handler.weekdayHeaders(language),
		"Backwards": dateRange.IsBackwards(),
		"Selection": buildRangePayload(dateRange),
	}
	if dateRange.Start != nil {
		data["RangeStart"] = dateRange.Start.String()
	}
	if dateRange.End != nil {
		data["RangeEnd"] = dateRange.End.String()
	}
	return data
}

func buildRangePayload(dateRange services.DateRange) rangePayload {
	payload := rangePayload{Backwards: dateRange.IsBackwards()}
	if dateRange.Start != nil {
		start := dateRange.Start.String()
		payload.Start = &start
	}
	if dateRange.End != nil {
		end := dateRange.End.String()
		payload.End = &end
	}
	return payload
}

func (handler *Handler) buildPickerSnapshot(language string, picker *services.Picker) pickerSnapshot {
	dateRange := picker.Range()
	snapshot := pickerSnapshot{
		Anchor: picker.Anchor().String(),
		Today:  picker.Today().String(),
		State:  string(dateRange.State()),
		Range:  buildRangePayload(dateRange),
	}

	view := picker.View()
	snapshot.Panels = []panelSnapshot{
		{
			Panel: string(services.PanelCurrent),
			Month: view.CurrentMonth().String(),
			Label: handler.i18n.MonthLabel(language, view.CurrentLabel().Year, view.CurrentLabel().Month),
			Grid:  view.CurrentGrid(),
		},
		{
			Panel: string(services.PanelNext),
			Month: view.NextMonth().String(),
			Label: handler.i18n.MonthLabel(language, view.NextLabel().Year, view.NextLabel().Month),
			Grid:  view.NextGrid(),
		},
	}
	return snapshot
}

func buildHistoryItems(entries []models.CommittedRange) []historyItemView {
	items := make([]historyItemView, 0, len(entries))
	for _, entry := range entries {
		start, end := services.CommittedRangeDates(entry)
		items = append(items, historyItemView{
			Start:     start.String(),
			End:       end.String(),
			Backwards: entry.Backwards,
		})
	}
	return items
}

func buildCommittedRangePayloads(entries []models.CommittedRange) []committedRangePayload {
	payloads := make([]committedRangePayload, 0, len(entries))
	for _, entry := range entries {
		payloads = append(payloads, committedRangePayload{
			ID:          entry.ID,
			Start:       calendar.DateOf(entry.StartDate, time.UTC).String(),
			End:         calendar.DateOf(entry.EndDate, time.UTC).String(),
			Backwards:   entry.Backwards,
			Label:       entry.Label,
			CommittedAt: entry.CommittedAt,
		})
	}
	return payloads
}
