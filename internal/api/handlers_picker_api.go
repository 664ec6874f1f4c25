package api

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepicker/internal/models"
	"github.com/terraincognita07/rangepicker/internal/services"
)

func (handler *Handler) GetPicker(c *fiber.Ctx) error {
	session, err := handler.pickerSession(c)
	if err != nil {
		log.Printf("resolve picker session: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	language := handler.language(c)
	var snapshot pickerSnapshot
	_ = session.With(func(picker *services.Picker) error {
		snapshot = handler.buildPickerSnapshot(language, picker)
		return nil
	})
	return c.JSON(snapshot)
}

// ListRanges reads history for the cookie's session. Without a valid
// cookie there is no history, and no session is created.
func (handler *Handler) ListRanges(c *fiber.Ctx) error {
	entries, err := handler.sessionHistory(c)
	if err != nil {
		status, message := pickerErrorStatus(err)
		return apiError(c, status, message)
	}
	return c.JSON(fiber.Map{"ranges": buildCommittedRangePayloads(entries)})
}

func (handler *Handler) ExportRangesICS(c *fiber.Ctx) error {
	entries, err := handler.sessionHistory(c)
	if err != nil {
		status, message := pickerErrorStatus(err)
		return apiError(c, status, message)
	}

	sessionID, _ := handler.requestSessionID(c)
	body := services.BuildRangesICS(sessionID, entries, time.Now())

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "rangepicker-ranges.ics"))
	return c.SendString(body)
}

func (handler *Handler) ClearRanges(c *fiber.Ctx) error {
	if sessionID, ok := handler.requestSessionID(c); ok {
		if err := handler.history.Clear(sessionID); err != nil {
			log.Printf("clear committed ranges for session %s: %v", sessionID, err)
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		}
	}
	return redirectOrJSON(c, "/picker")
}

func (handler *Handler) sessionHistory(c *fiber.Ctx) ([]models.CommittedRange, error) {
	sessionID, ok := handler.requestSessionID(c)
	if !ok {
		return []models.CommittedRange{}, nil
	}
	return handler.history.List(sessionID, 0)
}
