package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/periodtracker/internal/db"
	"github.com/terraincognita07/periodtracker/internal/models"
	"github.com/terraincognita07/periodtracker/internal/services"
	"go.uber.org/zap"
)

const temporaryPasswordLength = 12

var errPasswordsDiffer = errors.New("passwords do not match")

type ResetPasswordOptions struct {
	DBPath   string
	Username string
	// Prompt reads the new password from the terminal instead of
	// generating a temporary one.
	Prompt bool
	Out    io.Writer
	Logger *zap.Logger
}

// readPassword is swapped in tests.
var readPassword = func() ([]byte, error) {
	return readPasswordNoEcho(os.Stdin)
}

func RunResetPasswordCommand(options ResetPasswordOptions) error {
	username := services.NormalizeUsername(options.Username)
	if username == "" {
		return errors.New("username is required")
	}
	out := options.Out
	if out == nil {
		out = os.Stdout
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	database, err := db.OpenSQLite(options.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	auth := services.NewAuthService(db.NewUserRepository(database))
	user, err := auth.FindByUsername(username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", username)
		}
		return fmt.Errorf("load user: %w", err)
	}

	password, generated, err := chooseNewPassword(options.Prompt, out)
	if err != nil {
		return err
	}
	if err := resetUserPassword(auth, &user, password); err != nil {
		return err
	}
	logger.Info("password reset", zap.String("username", user.Username), zap.Bool("generated", generated))

	palette := newStyles(out)
	fmt.Fprintln(out, palette.success.Render("✅ Password reset successful"))
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, palette.muted.Render("Share it over a private channel and change it after logging in."))
	}
	return nil
}

func chooseNewPassword(usePrompt bool, out io.Writer) (string, bool, error) {
	if !usePrompt {
		password, err := generateTemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", err)
		}
		return password, true, nil
	}

	fmt.Fprint(out, "New password: ")
	first, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(out, "Repeat password: ")
	second, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	if !bytes.Equal(first, second) {
		return "", false, errPasswordsDiffer
	}
	return strings.TrimSpace(string(first)), false, nil
}

func resetUserPassword(auth *services.AuthService, user *models.User, password string) error {
	if err := auth.ResetPassword(user, password); err != nil {
		if errors.Is(err, services.ErrWeakPassword) {
			return fmt.Errorf("password must be at least %d characters", services.MinPasswordLength)
		}
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}
