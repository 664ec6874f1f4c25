package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/rangepicker/internal/calendar"
	"github.com/terraincognita07/rangepicker/internal/models"
)

var (
	ErrRangeHistorySessionMissing  = errors.New("range history session missing")
	ErrRangeHistoryRangeIncomplete = errors.New("range history range incomplete")
)

type RangeHistoryRepository interface {
	Create(entry *models.CommittedRange) error
	ListBySession(sessionID string, limit int) ([]models.CommittedRange, error)
	DeleteBySession(sessionID string) error
}

// RangeHistoryService is the host-side consumer of picker updates: every
// committed range is stored per session.
type RangeHistoryService struct {
	ranges RangeHistoryRepository
	clock  Clock
}

func NewRangeHistoryService(ranges RangeHistoryRepository, clock Clock) *RangeHistoryService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &RangeHistoryService{ranges: ranges, clock: clock}
}

func (service *RangeHistoryService) Record(sessionID string, dateRange DateRange) (models.CommittedRange, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return models.CommittedRange{}, ErrRangeHistorySessionMissing
	}
	if !dateRange.IsComplete() {
		return models.CommittedRange{}, ErrRangeHistoryRangeIncomplete
	}

	entry := models.CommittedRange{
		SessionID:   sessionID,
		StartDate:   dateRange.Start.Time(time.UTC),
		EndDate:     dateRange.End.Time(time.UTC),
		Backwards:   dateRange.IsBackwards(),
		Label:       RangeLabel(dateRange),
		CommittedAt: service.clock.Now().UTC(),
	}
	if err := service.ranges.Create(&entry); err != nil {
		return models.CommittedRange{}, fmt.Errorf("record committed range: %w", err)
	}
	return entry, nil
}

func (service *RangeHistoryService) List(sessionID string, limit int) ([]models.CommittedRange, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrRangeHistorySessionMissing
	}
	return service.ranges.ListBySession(sessionID, limit)
}

func (service *RangeHistoryService) Clear(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrRangeHistorySessionMissing
	}
	return service.ranges.DeleteBySession(sessionID)
}

// RangeLabel renders a range as "start..end" in click order.
func RangeLabel(dateRange DateRange) string {
	switch dateRange.State() {
	case SelectionEmpty:
		return ""
	case SelectionPartial:
		return dateRange.Start.String() + ".."
	default:
		return dateRange.Start.String() + ".." + dateRange.End.String()
	}
}

// CommittedRangeDates orders a stored range chronologically.
func CommittedRangeDates(entry models.CommittedRange) (calendar.Date, calendar.Date) {
	start := calendar.DateOf(entry.StartDate, time.UTC)
	end := calendar.DateOf(entry.EndDate, time.UTC)
	if calendar.IsBefore(end, start) {
		return end, start
	}
	return start, end
}
