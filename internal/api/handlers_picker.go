package api

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepicker/internal/calendar"
	"github.com/terraincognita07/rangepicker/internal/services"
)

func (handler *Handler) RedirectToPicker(c *fiber.Ctx) error {
	return c.Redirect("/picker", fiber.StatusSeeOther)
}

// ShowPicker renders both panels. ?month=YYYY-MM moves the anchor first.
func (handler *Handler) ShowPicker(c *fiber.Ctx) error {
	var anchor *calendar.Month
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		month, err := calendar.ParseMonth(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		anchor = &month
	}

	session, err := handler.pickerSession(c)
	if err != nil {
		log.Printf("resolve picker session: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	language := handler.language(c)
	var data fiber.Map
	_ = session.With(func(picker *services.Picker) error {
		if anchor != nil {
			picker.ShowMonth(*anchor)
		}
		data = handler.pickerViewData(language, picker)
		return nil
	})

	history, err := handler.history.List(session.ID, pickerHistoryPageLimit)
	if err != nil {
		log.Printf("list committed ranges for session %s: %v", session.ID, err)
	}
	data["History"] = buildHistoryItems(history)

	return handler.render(c, "picker", data)
}

func (handler *Handler) PreviousMonth(c *fiber.Ctx) error {
	return handler.applyPickerCommand(c, func(picker *services.Picker) error {
		picker.GoToPreviousMonth()
		return nil
	})
}

func (handler *Handler) NextMonth(c *fiber.Ctx) error {
	return handler.applyPickerCommand(c, func(picker *services.Picker) error {
		picker.GoToNextMonth()
		return nil
	})
}

func (handler *Handler) ClickDay(c *fiber.Ctx) error {
	panel, err := services.ParsePanel(c.Params("panel"))
	if err != nil {
		status, message := pickerErrorStatus(err)
		return apiError(c, status, message)
	}
	day, err := strconv.Atoi(strings.TrimSpace(c.Params("day")))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid day")
	}

	return handler.applyPickerCommand(c, func(picker *services.Picker) error {
		return picker.OnDayClicked(panel, day)
	})
}

func (handler *Handler) ResetPicker(c *fiber.Ctx) error {
	return handler.applyPickerCommand(c, func(picker *services.Picker) error {
		picker.Reset()
		return nil
	})
}

// applyPickerCommand runs command under the session lock and answers with
// the panel fragment for HTMX, a JSON snapshot for API clients, or a
// redirect back to the page.
func (handler *Handler) applyPickerCommand(c *fiber.Ctx, command func(picker *services.Picker) error) error {
	session, err := handler.pickerSession(c)
	if err != nil {
		log.Printf("resolve picker session: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	language := handler.language(c)
	mode := negotiateResponse(c)
	var (
		data     fiber.Map
		snapshot pickerSnapshot
	)
	err = session.With(func(picker *services.Picker) error {
		if err := command(picker); err != nil {
			return err
		}
		switch mode {
		case responseHTMX:
			data = handler.pickerViewData(language, picker)
		case responseJSON:
			snapshot = handler.buildPickerSnapshot(language, picker)
		}
		return nil
	})
	if err != nil {
		status, message := pickerErrorStatus(err)
		return apiError(c, status, message)
	}

	switch mode {
	case responseHTMX:
		return handler.renderPartial(c, "picker_partial", data)
	case responseJSON:
		return c.JSON(snapshot)
	default:
		return c.Redirect("/picker", fiber.StatusSeeOther)
	}
}
