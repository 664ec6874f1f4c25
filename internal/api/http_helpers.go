package api

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type responseMode int

const (
	responseRedirect responseMode = iota
	responseHTMX
	responseJSON
)

// negotiateResponse picks how a mutation answers. HTMX wins over Accept
// because htmx sends Accept: */* alongside HX-Request.
func negotiateResponse(c *fiber.Ctx) responseMode {
	if strings.EqualFold(c.Get("HX-Request"), "true") {
		return responseHTMX
	}
	if strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), fiber.MIMEApplicationJSON) {
		return responseJSON
	}
	return responseRedirect
}

func redirectOrJSON(c *fiber.Ctx, path string) error {
	switch negotiateResponse(c) {
	case responseHTMX:
		c.Set("HX-Redirect", path)
		return c.SendStatus(fiber.StatusOK)
	case responseJSON:
		return c.JSON(fiber.Map{"ok": true})
	default:
		return c.Redirect(path, fiber.StatusSeeOther)
	}
}

// apiError answers with a localized status fragment for HTMX swaps and
// {"error": message} otherwise.
func apiError(c *fiber.Ctx, status int, message string) error {
	if negotiateResponse(c) != responseHTMX {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	rendered := message
	if key := errorTranslationKey(message); key != "" {
		if localized := translateMessage(currentMessages(c), key); localized != key {
			rendered = localized
		}
	}
	c.Type("html", "utf-8")
	return c.Status(status).SendString(fmt.Sprintf("<div class=\"status-error\" role=\"alert\">%s</div>", template.HTMLEscapeString(rendered)))
}

func acceptsJSON(c *fiber.Ctx) bool {
	return negotiateResponse(c) == responseJSON
}

func isHTMX(c *fiber.Ctx) bool {
	return negotiateResponse(c) == responseHTMX
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := c.Path()
	if query := string(c.Request().URI().QueryString()); query != "" {
		path += "?" + query
	}
	return path
}

func localizedPageTitle(messages map[string]string, key string, fallback string) string {
	title := translateMessage(messages, key)
	if title == key || strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}

func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || !strings.HasPrefix(candidate, "/") {
		return fallback
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.IsAbs() {
		return fallback
	}
	return candidate
}
