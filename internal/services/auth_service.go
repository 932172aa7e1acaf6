package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken              = errors.New("username taken")
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrUserNotFound               = errors.New("user not found")
	ErrRegistrationFieldsRequired = errors.New("registration fields required")
)

const (
	DemoUsername = "demo"
	DemoPassword = "demo123"
)

type AuthUserRepository interface {
	ExistsByUsername(username string) (bool, error)
	FindByUsername(username string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type RegistrationInput struct {
	Name            string
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

type AuthService struct {
	users AuthUserRepository
	cost  int
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// WithHashCost lowers the bcrypt cost for tests.
func (service *AuthService) WithHashCost(cost int) *AuthService {
	service.cost = cost
	return service
}

func (service *AuthService) Register(input RegistrationInput, now time.Time) (models.User, error) {
	normalized, err := NormalizeRegistrationInput(input)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByUsername(normalized.Username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return models.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), service.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     normalized.Username,
		Email:        normalized.Email,
		DisplayName:  normalized.Name,
		PasswordHash: string(hash),
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for unknown users and wrong
// passwords alike.
func (service *AuthService) Authenticate(usernameRaw string, password string) (models.User, error) {
	username := NormalizeUsername(usernameRaw)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) FindByUsername(username string) (models.User, error) {
	return service.users.FindByUsername(NormalizeUsername(username))
}

func (service *AuthService) ResetPassword(user *models.User, password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return service.users.Save(user)
}

// EnsureDemoUser creates the demo account once; it reports whether a new
// user was inserted.
func (service *AuthService) EnsureDemoUser(now time.Time) (bool, error) {
	exists, err := service.users.ExistsByUsername(DemoUsername)
	if err != nil {
		return false, fmt.Errorf("check demo user: %w", err)
	}
	if exists {
		return false, nil
	}

	_, err = service.Register(RegistrationInput{
		Name:            "Demo User",
		Email:           "demo@example.com",
		Username:        DemoUsername,
		Password:        DemoPassword,
		ConfirmPassword: DemoPassword,
	}, now)
	if err != nil {
		return false, err
	}
	return true, nil
}

func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
