package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultSessionSweepSchedule = "@every 5m"

// SessionJanitor evicts idle picker sessions on a cron schedule.
type SessionJanitor struct {
	store    *SessionStore
	ttl      time.Duration
	schedule string
	runner   *cron.Cron
}

func NewSessionJanitor(store *SessionStore, ttl time.Duration, schedule string) *SessionJanitor {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		schedule = DefaultSessionSweepSchedule
	}
	return &SessionJanitor{store: store, ttl: ttl, schedule: schedule}
}

// Sweep runs one eviction pass.
func (janitor *SessionJanitor) Sweep() int {
	evicted := janitor.store.EvictIdle(janitor.ttl)
	if evicted > 0 {
		log.Printf("session janitor: evicted %d idle picker sessions", evicted)
	}
	return evicted
}

// Start schedules sweeps until ctx is cancelled or Stop is called.
func (janitor *SessionJanitor) Start(ctx context.Context) error {
	if janitor.ttl <= 0 {
		return nil
	}

	runner := cron.New()
	if _, err := runner.AddFunc(janitor.schedule, func() { janitor.Sweep() }); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", janitor.schedule, err)
	}
	janitor.runner = runner
	runner.Start()

	go func() {
		<-ctx.Done()
		janitor.Stop()
	}()
	return nil
}

// Stop waits for a running sweep to finish.
func (janitor *SessionJanitor) Stop() {
	if janitor.runner == nil {
		return
	}
	<-janitor.runner.Stop().Done()
}
