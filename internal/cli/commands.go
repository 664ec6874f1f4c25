package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/rangepicker/internal/calendar"
	"github.com/terraincognita07/rangepicker/internal/db"
	"github.com/terraincognita07/rangepicker/internal/i18n"
	"github.com/terraincognita07/rangepicker/internal/services"
)

type CalOptions struct {
	Stdout          io.Writer
	I18n            *i18n.Manager
	Clock           services.Clock
	Location        *time.Location
	DefaultLanguage string
	DefaultSpanDays int
}

type dayClick struct {
	panel services.Panel
	day   int
}

// RunCalCommand prints the dual-month picker for the given flags. Clicks are
// replayed in order, e.g. -click current:12 -click next:5.
func RunCalCommand(args []string, options CalOptions) error {
	flags := flag.NewFlagSet("cal", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	monthRaw := flags.String("month", "", "anchor month as YYYY-MM")
	fromRaw := flags.String("from", "", "range start as YYYY-MM-DD")
	toRaw := flags.String("to", "", "range end as YYYY-MM-DD")
	language := flags.String("lang", options.DefaultLanguage, "output language")
	colorMode := flags.String("color", "auto", "auto, always or never")
	empty := flags.Bool("clear", false, "start from an empty selection")
	clicks := make([]dayClick, 0)
	flags.Func("click", "click a day as panel:day", func(raw string) error {
		click, err := parseDayClick(raw)
		if err != nil {
			return err
		}
		clicks = append(clicks, click)
		return nil
	})

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("cal: %w", err)
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("cal: unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	initial, err := parseInitialRange(*fromRaw, *toRaw)
	if err != nil {
		return fmt.Errorf("cal: %w", err)
	}
	color, err := resolveColor(*colorMode, options.Stdout)
	if err != nil {
		return fmt.Errorf("cal: %w", err)
	}

	picker := services.NewPicker(services.PickerOptions{
		InitialRange:    initial,
		Clock:           options.Clock,
		Location:        options.Location,
		DefaultSpanDays: options.DefaultSpanDays,
	})
	if *empty {
		picker.Reset()
	}
	if strings.TrimSpace(*monthRaw) != "" {
		anchor, err := calendar.ParseMonth(*monthRaw)
		if err != nil {
			return fmt.Errorf("cal: invalid month %q: %w", *monthRaw, err)
		}
		picker.ShowMonth(anchor)
	}
	for _, click := range clicks {
		if err := picker.OnDayClicked(click.panel, click.day); err != nil {
			return fmt.Errorf("cal: click %s:%d: %w", click.panel, click.day, err)
		}
	}

	return RenderDualMonth(options.Stdout, picker, RenderOptions{
		Language: *language,
		I18n:     options.I18n,
		Color:    color,
	})
}

// RunHistoryCommand lists the committed ranges of one session, newest
// first, or exports them as iCalendar with -ics.
func RunHistoryCommand(dbPath string, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("history", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	sessionID := flags.String("session", "", "picker session id")
	limit := flags.Int("limit", 20, "maximum number of ranges, 0 for all")
	asICS := flags.Bool("ics", false, "print an iCalendar document")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if strings.TrimSpace(*sessionID) == "" {
		return errors.New("history: -session is required")
	}
	if *limit < 0 {
		return errors.New("history: -limit must not be negative")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	history := services.NewRangeHistoryService(db.NewRepositories(database).Ranges, nil)
	entries, err := history.List(*sessionID, *limit)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	if *asICS {
		_, err := io.WriteString(stdout, services.BuildRangesICS(*sessionID, entries, time.Now()))
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(stdout, "no committed ranges")
		return err
	}
	for _, entry := range entries {
		start, end := services.CommittedRangeDates(entry)
		line := fmt.Sprintf("#%d  %s..%s  %s", entry.ID, start, end, entry.CommittedAt.UTC().Format(time.RFC3339))
		if entry.Backwards {
			line += "  backwards"
		}
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return err
		}
	}
	return nil
}

func parseDayClick(raw string) (dayClick, error) {
	panelRaw, dayRaw, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return dayClick{}, fmt.Errorf("invalid click %q, expected panel:day", raw)
	}
	panel, err := services.ParsePanel(panelRaw)
	if err != nil {
		return dayClick{}, err
	}
	day, err := strconv.Atoi(dayRaw)
	if err != nil {
		return dayClick{}, fmt.Errorf("invalid click day %q", dayRaw)
	}
	return dayClick{panel: panel, day: day}, nil
}

func parseInitialRange(fromRaw string, toRaw string) (*services.DateRange, error) {
	fromRaw = strings.TrimSpace(fromRaw)
	toRaw = strings.TrimSpace(toRaw)
	if fromRaw == "" && toRaw == "" {
		return nil, nil
	}

	initial := &services.DateRange{}
	if fromRaw != "" {
		start, err := calendar.ParseDate(fromRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid -from %q: %w", fromRaw, err)
		}
		initial.Start = &start
	}
	if toRaw != "" {
		end, err := calendar.ParseDate(toRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid -to %q: %w", toRaw, err)
		}
		initial.End = &end
	}
	return initial, nil
}

func resolveColor(mode string, stdout io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		file, ok := stdout.(*os.File)
		return ok && isTerminal(file) && os.Getenv("NO_COLOR") == "", nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid -color %q", mode)
	}
}
