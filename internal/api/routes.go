package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/", handler.RedirectToPicker)
	app.Get("/picker", handler.ShowPicker)
	app.Post("/picker/prev", handler.PreviousMonth)
	app.Post("/picker/next", handler.NextMonth)
	app.Post("/picker/days/:panel/:day", handler.ClickDay)
	app.Post("/picker/reset", handler.ResetPicker)
	app.Post("/picker/history/clear", handler.ClearRanges)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/picker", handler.GetPicker)

	api.Get("/ranges", handler.ListRanges)
	api.Get("/ranges.ics", handler.ExportRangesICS)
	api.Delete("/ranges", handler.ClearRanges)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
