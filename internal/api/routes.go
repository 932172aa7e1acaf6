package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	if handler.metricsHandler != nil {
		app.Get("/metrics", handler.metricsRoute())
	}
	app.Get("/lang/:lang", handler.SetLanguage)
	app.Get("/api/i18n", handler.Translations)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	api.Get("/dashboard", handler.AuthRequired, handler.GetDashboard)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)
	api.Get("/history", handler.AuthRequired, handler.GetHistory)
	api.Get("/stats", handler.AuthRequired, handler.GetStats)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Get("", handler.ListPeriods)
	periods.Post("", handler.LogPeriod)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.ListSymptoms)
	symptoms.Post("", handler.LogSymptom)
	symptoms.Get("/catalog", handler.SymptomCatalog)

	api.Post("/insights", handler.AuthRequired, handler.Insights)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Post("/cycle", handler.UpdateCycleSettings)
	settings.Post("/password", handler.ChangePassword)

	api.Get("/export/json", handler.AuthRequired, handler.ExportJSON)

	app.Use(handler.NotFound)
}
