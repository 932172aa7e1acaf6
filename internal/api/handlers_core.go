package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := handler.i18n.NormalizeLanguage(c.Params("lang"))
	handler.setLanguageCookie(c, language)
	c.Locals(contextLanguageKey, language)
	return c.JSON(fiber.Map{
		"ok":       true,
		"language": language,
		"message":  handler.message(c, "message.language_changed"),
	})
}

// Translations serves the active catalog so a browser client can render labels.
func (handler *Handler) Translations(c *fiber.Ctx) error {
	language := currentLanguage(c)
	return c.JSON(fiber.Map{
		"language": language,
		"messages": handler.i18n.Messages(language),
	})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
}

func (handler *Handler) metricsRoute() fiber.Handler {
	return adaptor.HTTPHandler(handler.metricsHandler)
}
