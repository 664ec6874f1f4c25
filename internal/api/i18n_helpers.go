package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func errorTranslationKey(message string) string {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "invalid panel":
		return "error.invalid_panel"
	case "day out of range", "invalid day":
		return "error.day_out_of_range"
	case "invalid month":
		return "error.invalid_month"
	case "not found":
		return "error.not_found"
	case "internal error":
		return "error.internal"
	default:
		return ""
	}
}

func (handler *Handler) language(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return handler.i18n.DefaultLanguage()
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	language := handler.language(c)
	if _, ok := data["Messages"]; !ok {
		messages := currentMessages(c)
		if len(messages) == 0 {
			messages = handler.i18n.Messages(language)
		}
		data["Messages"] = messages
	}
	if _, ok := data["Lang"]; !ok {
		data["Lang"] = language
	}
	if _, ok := data["Languages"]; !ok {
		data["Languages"] = handler.i18n.SupportedLanguages()
	}
	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}
	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = localizedPageTitle(data["Messages"].(map[string]string), "app.title", "Range picker")
	}
	return data
}
