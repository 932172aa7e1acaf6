package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodtracker/internal/services"
	"go.uber.org/zap"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var serviceErrorMappings = []errorMapping{
	{target: services.ErrInvalidDate, status: fiber.StatusBadRequest, code: "invalid_date"},
	{target: services.ErrFutureDate, status: fiber.StatusBadRequest, code: "future_date"},
	{target: services.ErrInvalidFlowIntensity, status: fiber.StatusBadRequest, code: "invalid_flow"},
	{target: services.ErrNotesTooLong, status: fiber.StatusBadRequest, code: "notes_too_long"},
	{target: services.ErrMoodRatingOutOfRange, status: fiber.StatusBadRequest, code: "invalid_mood"},
	{target: services.ErrEnergyLevelOutOfRange, status: fiber.StatusBadRequest, code: "invalid_energy"},
	{target: services.ErrInvalidSymptomTag, status: fiber.StatusBadRequest, code: "invalid_symptom"},
	{target: services.ErrCycleLengthOutOfRange, status: fiber.StatusBadRequest, code: "cycle_length_out_of_range"},
	{target: services.ErrRegistrationFieldsRequired, status: fiber.StatusBadRequest, code: "fields_required"},
	{target: services.ErrPasswordMismatch, status: fiber.StatusBadRequest, code: "password_mismatch"},
	{target: services.ErrWeakPassword, status: fiber.StatusBadRequest, code: "weak_password"},
	{target: services.ErrInvalidEmail, status: fiber.StatusBadRequest, code: "invalid_email"},
	{target: services.ErrInvalidUsername, status: fiber.StatusBadRequest, code: "invalid_username"},
	{target: services.ErrUsernameTaken, status: fiber.StatusConflict, code: "username_taken"},
	{target: services.ErrInvalidCredentials, status: fiber.StatusUnauthorized, code: "invalid_credentials"},
	{target: services.ErrInvalidCurrentPassword, status: fiber.StatusBadRequest, code: "invalid_current_password"},
	{target: services.ErrNewPasswordMustDiffer, status: fiber.StatusBadRequest, code: "password_must_differ"},
	{target: services.ErrEmptyFeeling, status: fiber.StatusBadRequest, code: "empty_feeling"},
}

// apiError writes {"error": code, "message": localized text}.
func (handler *Handler) apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": handler.i18n.Translate(currentLanguage(c), "error."+code),
	})
}

// serviceError maps known sentinels to client errors and logs the rest.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return handler.apiError(c, mapping.status, mapping.code)
		}
	}
	handler.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return handler.apiError(c, fiber.StatusInternalServerError, "internal")
}

func (handler *Handler) message(c *fiber.Ctx, key string, args ...any) string {
	if len(args) == 0 {
		return handler.i18n.Translate(currentLanguage(c), key)
	}
	return handler.i18n.Translatef(currentLanguage(c), key, args...)
}
