package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NotFound is the last handler in the chain. API paths, JSON clients and
// HTMX swaps get the short error form; browsers get the page.
func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") || negotiateResponse(c) != responseRedirect {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title": localizedPageTitle(currentMessages(c), "error.not_found", "Page not found"),
	})
}
