package api

import (
	"log"

	"github.com/terraincognita07/rangepicker/internal/db"
	"github.com/terraincognita07/rangepicker/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.history = services.NewRangeHistoryService(handler.repositories.Ranges, handler.clock)
	return handler
}

// buildPicker creates the picker for a session and binds its update
// callback to the history service under that session ID.
func (handler *Handler) buildPicker(sessionID string) *services.Picker {
	return services.NewPicker(services.PickerOptions{
		OnUpdate: func(dateRange services.DateRange) {
			if _, err := handler.history.Record(sessionID, dateRange); err != nil {
				log.Printf("record committed range for session %s: %v", sessionID, err)
			}
		},
		Clock:           handler.clock,
		Location:        handler.location,
		DefaultSpanDays: handler.defaultSpanDays,
	})
}
