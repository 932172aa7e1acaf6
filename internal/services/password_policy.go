package services

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrWeakPassword     = errors.New("weak password")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidUsername  = errors.New("invalid username")
)

const (
	MinPasswordLength = 6
	maxUsernameLength = 64
)

func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

func NormalizeRegistrationInput(input RegistrationInput) (RegistrationInput, error) {
	normalized := RegistrationInput{
		Name:            strings.TrimSpace(input.Name),
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		Username:        NormalizeUsername(input.Username),
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	}

	if normalized.Name == "" || normalized.Email == "" || normalized.Username == "" ||
		normalized.Password == "" || normalized.ConfirmPassword == "" {
		return RegistrationInput{}, ErrRegistrationFieldsRequired
	}
	if normalized.Password != normalized.ConfirmPassword {
		return RegistrationInput{}, ErrPasswordMismatch
	}
	if err := ValidatePasswordStrength(normalized.Password); err != nil {
		return RegistrationInput{}, err
	}
	if _, err := mail.ParseAddress(normalized.Email); err != nil {
		return RegistrationInput{}, ErrInvalidEmail
	}
	if len(normalized.Username) > maxUsernameLength || strings.ContainsAny(normalized.Username, " \t\r\n") {
		return RegistrationInput{}, ErrInvalidUsername
	}
	return normalized, nil
}
