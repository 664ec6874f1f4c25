package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepicker/internal/services"
)

// pickerSession resolves the caller's picker. A missing or invalid cookie
// starts a new session; a valid cookie whose picker was evicted gets a fresh
// picker under the same ID, so its history stays attached.
func (handler *Handler) pickerSession(c *fiber.Ctx) (*services.PickerSession, error) {
	if sessionID, ok := handler.requestSessionID(c); ok {
		session, err := handler.sessions.Resume(sessionID, handler.buildPicker)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, services.ErrPickerSessionNotFound) {
			return nil, err
		}
	}

	session := handler.sessions.Create(handler.buildPicker)
	if err := handler.setSessionCookie(c, session.ID); err != nil {
		handler.sessions.Delete(session.ID)
		return nil, fmt.Errorf("issue session cookie: %w", err)
	}
	return session, nil
}

func pickerErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrPickerPanelInvalid):
		return fiber.StatusBadRequest, "invalid panel"
	case errors.Is(err, services.ErrPickerDayOutOfRange):
		return fiber.StatusBadRequest, "day out of range"
	case errors.Is(err, services.ErrRangeHistorySessionMissing):
		return fiber.StatusBadRequest, "session missing"
	default:
		return fiber.StatusInternalServerError, "internal error"
	}
}
