package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/periodtracker/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCurrentPassword = errors.New("invalid current password")
	ErrNewPasswordMustDiffer  = errors.New("new password must differ")
)

type PasswordChangeInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func ValidatePasswordChange(passwordHash string, input PasswordChangeInput) error {
	current := strings.TrimSpace(input.CurrentPassword)
	next := strings.TrimSpace(input.NewPassword)
	confirm := strings.TrimSpace(input.ConfirmPassword)

	if current == "" || next == "" || confirm == "" {
		return ErrRegistrationFieldsRequired
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(current)) != nil {
		return ErrInvalidCurrentPassword
	}
	if current == next {
		return ErrNewPasswordMustDiffer
	}
	return ValidatePasswordStrength(next)
}

func (service *AuthService) ChangePassword(user *models.User, input PasswordChangeInput) error {
	if err := ValidatePasswordChange(user.PasswordHash, input); err != nil {
		return err
	}
	return service.ResetPassword(user, strings.TrimSpace(input.NewPassword))
}
