package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodtracker/internal/services"
)

func (handler *Handler) Insights(c *fiber.Ctx) error {
	input := insightsInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_request")
	}

	return handler.withUserSession(c, false, func(session *services.Session) error {
		advice, err := handler.adviceService.Advise(c.UserContext(), session.Model(), input.Feeling, handler.now())
		if err != nil {
			return handler.serviceError(c, err)
		}
		return c.JSON(advice)
	})
}
