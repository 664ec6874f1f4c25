package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/rangepicker/internal/models"
)

type stubRangeHistoryRepo struct {
	created   []models.CommittedRange
	deleted   []string
	createErr error
}

func (stub *stubRangeHistoryRepo) Create(entry *models.CommittedRange) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	entry.ID = uint(len(stub.created) + 1)
	stub.created = append(stub.created, *entry)
	return nil
}

func (stub *stubRangeHistoryRepo) ListBySession(sessionID string, limit int) ([]models.CommittedRange, error) {
	result := make([]models.CommittedRange, 0)
	for index := len(stub.created) - 1; index >= 0; index-- {
		if stub.created[index].SessionID == sessionID {
			result = append(result, stub.created[index])
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (stub *stubRangeHistoryRepo) DeleteBySession(sessionID string) error {
	stub.deleted = append(stub.deleted, sessionID)
	return nil
}

func TestRangeHistoryRecordStoresClickOrder(t *testing.T) {
	t.Parallel()

	repo := &stubRangeHistoryRepo{}
	committedAt := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	service := NewRangeHistoryService(repo, FixedClock{At: committedAt})

	entry, err := service.Record(" session-a ", NewDateRange(mustDate(t, "2025-06-20"), mustDate(t, "2025-06-10")))
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if entry.SessionID != "session-a" {
		t.Fatalf("expected trimmed session id, got %q", entry.SessionID)
	}
	if !entry.Backwards {
		t.Fatal("expected backwards flag to be stored")
	}
	if entry.Label != "2025-06-20..2025-06-10" {
		t.Fatalf("expected click-order label, got %q", entry.Label)
	}
	if !entry.CommittedAt.Equal(committedAt) {
		t.Fatalf("expected committed_at %s, got %s", committedAt, entry.CommittedAt)
	}

	start, end := CommittedRangeDates(entry)
	if start.String() != "2025-06-10" || end.String() != "2025-06-20" {
		t.Fatalf("expected chronological dates, got %s..%s", start, end)
	}
}

func TestRangeHistoryRecordRejectsBadInput(t *testing.T) {
	t.Parallel()

	service := NewRangeHistoryService(&stubRangeHistoryRepo{}, nil)
	start := mustDate(t, "2025-06-20")

	if _, err := service.Record("  ", NewDateRange(start, start)); !errors.Is(err, ErrRangeHistorySessionMissing) {
		t.Fatalf("expected ErrRangeHistorySessionMissing, got %v", err)
	}
	if _, err := service.Record("a", DateRange{Start: &start}); !errors.Is(err, ErrRangeHistoryRangeIncomplete) {
		t.Fatalf("expected ErrRangeHistoryRangeIncomplete, got %v", err)
	}
}

func TestRangeHistoryRecordWrapsRepositoryError(t *testing.T) {
	t.Parallel()

	storageErr := errors.New("disk full")
	service := NewRangeHistoryService(&stubRangeHistoryRepo{createErr: storageErr}, nil)
	start := mustDate(t, "2025-06-20")

	_, err := service.Record("a", NewDateRange(start, start))
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "record committed range") {
		t.Fatalf("expected context in error, got %q", err.Error())
	}
}

func TestRangeHistoryListAndClear(t *testing.T) {
	t.Parallel()

	repo := &stubRangeHistoryRepo{}
	service := NewRangeHistoryService(repo, nil)
	day := mustDate(t, "2025-06-01")
	for _, session := range []string{"a", "b", "a"} {
		if _, err := service.Record(session, NewDateRange(day, day.AddDays(1))); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	listed, err := service.List("a", 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 ranges for session a, got %d", len(listed))
	}
	if _, err := service.List("", 0); !errors.Is(err, ErrRangeHistorySessionMissing) {
		t.Fatalf("expected ErrRangeHistorySessionMissing, got %v", err)
	}

	if err := service.Clear("a"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "a" {
		t.Fatalf("expected delete for session a, got %#v", repo.deleted)
	}
}

func TestBuildRangesICSExportsAllDayEvents(t *testing.T) {
	t.Parallel()

	committedAt := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.CommittedRange{
		{
			ID:          1,
			SessionID:   "a",
			StartDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC),
			Label:       "2025-03-10..2025-03-30",
			CommittedAt: committedAt,
		},
		{
			ID:          2,
			SessionID:   "a",
			StartDate:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC),
			Backwards:   true,
			CommittedAt: committedAt,
		},
	}

	body := BuildRangesICS("a", entries, committedAt)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:" + rangesICSProductID,
		"UID:range-1-a@rangepicker",
		"VALUE=DATE:20250310",
		"VALUE=DATE:20250331",
		"SUMMARY:2025-03-10..2025-03-30",
		"VALUE=DATE:20251224",
		"VALUE=DATE:20260101",
		"SUMMARY:2025-12-24..2025-12-31",
		"DESCRIPTION:selected end before start",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected ics body to contain %q, got:\n%s", want, body)
		}
	}
	if got := strings.Count(body, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}
}
