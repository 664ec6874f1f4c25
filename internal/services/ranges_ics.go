package services

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/terraincognita07/rangepicker/internal/models"
)

const rangesICSProductID = "-//rangepicker//committed ranges//EN"

// BuildRangesICS exports committed ranges as all-day events. DTEND is the
// exclusive day after the inclusive range end, as iCalendar requires.
// Backwards selections are exported in chronological order.
func BuildRangesICS(sessionID string, entries []models.CommittedRange, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(rangesICSProductID)

	for _, entry := range entries {
		start, end := CommittedRangeDates(entry)

		event := cal.AddEvent(fmt.Sprintf("range-%d-%s@rangepicker", entry.ID, sessionID))
		event.SetDtStampTime(now.UTC())
		event.SetCreatedTime(entry.CommittedAt.UTC())
		event.SetAllDayStartAt(start.Time(time.UTC))
		event.SetAllDayEndAt(end.AddDays(1).Time(time.UTC))

		summary := entry.Label
		if summary == "" {
			summary = start.String() + ".." + end.String()
		}
		event.SetSummary(summary)
		if entry.Backwards {
			event.SetDescription("selected end before start")
		}
	}

	return cal.Serialize()
}
