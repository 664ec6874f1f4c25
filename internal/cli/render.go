package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/rangepicker/internal/i18n"
	"github.com/terraincognita07/rangepicker/internal/services"
)

const (
	cellWidth  = 4
	panelWidth = cellWidth * 7
	panelGap   = "    "

	ansiReset   = "\x1b[0m"
	ansiEdge    = "\x1b[1;7m"
	ansiInRange = "\x1b[4m"
	ansiToday   = "\x1b[1m"
)

type RenderOptions struct {
	Language string
	I18n     *i18n.Manager
	Color    bool
}

// RenderDualMonth writes both panels side by side followed by a one-line
// summary of the selection. Range endpoints are bracketed and days strictly
// inside the range are starred, so the output reads without color.
func RenderDualMonth(w io.Writer, picker *services.Picker, options RenderOptions) error {
	if picker == nil {
		return errors.New("picker is required")
	}
	if options.I18n == nil {
		return errors.New("i18n manager is required")
	}
	language := options.I18n.NormalizeLanguage(options.Language)

	panels := picker.Panels()
	lines := make([]string, 0, 2+len(panels[0].Weeks()))

	labels := make([]string, 0, len(panels))
	headers := make([]string, 0, len(panels))
	for _, panel := range panels {
		label := options.I18n.MonthLabel(language, panel.LabelMonth.Year, panel.LabelMonth.Month)
		labels = append(labels, centerText(label, panelWidth))
		headers = append(headers, weekdayHeaderLine(options.I18n, language))
	}
	lines = append(lines, strings.Join(labels, panelGap), strings.Join(headers, panelGap))

	weeks := make([][][]services.PickerCell, 0, len(panels))
	for _, panel := range panels {
		weeks = append(weeks, panel.Weeks())
	}
	for row := range weeks[0] {
		parts := make([]string, 0, len(panels))
		for index := range panels {
			var builder strings.Builder
			for _, cell := range weeks[index][row] {
				builder.WriteString(renderCell(cell, options.Color))
			}
			parts = append(parts, builder.String())
		}
		lines = append(lines, strings.Join(parts, panelGap))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, rangeSummary(options.I18n, language, picker.Range()))
	return err
}

func renderCell(cell services.PickerCell, color bool) string {
	if cell.Blank {
		return strings.Repeat(" ", cellWidth)
	}

	var text, code string
	switch {
	case cell.IsStart || cell.IsEnd:
		text, code = fmt.Sprintf("[%2d]", cell.Day), ansiEdge
	case cell.InRange:
		text, code = fmt.Sprintf("*%2d*", cell.Day), ansiInRange
	case cell.IsToday:
		text, code = fmt.Sprintf(" %2d ", cell.Day), ansiToday
	default:
		return fmt.Sprintf(" %2d ", cell.Day)
	}
	if !color {
		return text
	}
	return code + text + ansiReset
}

func weekdayHeaderLine(manager *i18n.Manager, language string) string {
	var builder strings.Builder
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		name := []rune(manager.WeekdayShort(language, weekday))
		if len(name) > 2 {
			name = name[:2]
		}
		builder.WriteString(centerText(string(name), cellWidth))
	}
	return builder.String()
}

func centerText(text string, width int) string {
	length := utf8.RuneCountInString(text)
	if length >= width {
		return text
	}
	left := (width - length) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-length-left)
}

func rangeSummary(manager *i18n.Manager, language string, dateRange services.DateRange) string {
	switch dateRange.State() {
	case services.SelectionEmpty:
		return manager.Translate(language, "picker.range.none")
	case services.SelectionPartial:
		return fmt.Sprintf("%s %s. %s",
			manager.Translate(language, "picker.range.from"),
			dateRange.Start.String(),
			manager.Translate(language, "picker.range.pick_end"),
		)
	}

	summary := fmt.Sprintf("%s %s %s %s",
		manager.Translate(language, "picker.range.from"),
		dateRange.Start.String(),
		strings.ToLower(manager.Translate(language, "picker.range.to")),
		dateRange.End.String(),
	)
	if dateRange.IsBackwards() {
		summary += " (" + manager.Translate(language, "picker.range.backwards") + ")"
	}
	return summary
}
