package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodtracker/internal/services"
)

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	input := passwordChangeInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_request")
	}

	err := handler.authService.ChangePassword(user, services.PasswordChangeInput{
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.message(c, "message.password_changed"),
	})
}

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	return handler.withUserSession(c, false, func(session *services.Session) error {
		return c.JSON(services.BuildCycleStats(session.Model()))
	})
}
