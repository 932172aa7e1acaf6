package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type memoryUserRepository struct {
	nextID uint
	users  map[uint]models.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[uint]models.User{}}
}

func (repo *memoryUserRepository) ExistsByUsername(username string) (bool, error) {
	_, err := repo.FindByUsername(username)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (repo *memoryUserRepository) FindByUsername(username string) (models.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (repo *memoryUserRepository) FindByID(userID uint) (models.User, error) {
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (repo *memoryUserRepository) Create(user *models.User) error {
	repo.nextID++
	user.ID = repo.nextID
	repo.users[user.ID] = *user
	return nil
}

func (repo *memoryUserRepository) Save(user *models.User) error {
	repo.users[user.ID] = *user
	return nil
}

func newTestAuthService() (*AuthService, *memoryUserRepository) {
	repo := newMemoryUserRepository()
	return NewAuthService(repo).WithHashCost(bcrypt.MinCost), repo
}

func TestAuthServiceRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService()
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	user, err := service.Register(RegistrationInput{
		Name:            "Jane",
		Email:           "jane@example.com",
		Username:        "Jane",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}, now)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 || user.Username != "jane" {
		t.Fatalf("unexpected user: %#v", user)
	}
	if user.PasswordHash == "secret1" {
		t.Fatal("expected password to be hashed")
	}

	if _, err := service.Authenticate(" JANE ", "secret1"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := service.Authenticate("jane", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("nobody", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthServiceRejectsDuplicateUsername(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService()
	input := RegistrationInput{
		Name:            "Jane",
		Email:           "jane@example.com",
		Username:        "jane",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	if _, err := service.Register(input, time.Now()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := service.Register(input, time.Now()); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthServiceEnsureDemoUserIsIdempotent(t *testing.T) {
	t.Parallel()

	service, repo := newTestAuthService()
	created, err := service.EnsureDemoUser(time.Now())
	if err != nil || !created {
		t.Fatalf("expected demo user to be created, got created=%v err=%v", created, err)
	}
	created, err = service.EnsureDemoUser(time.Now())
	if err != nil || created {
		t.Fatalf("expected second call to be a no-op, got created=%v err=%v", created, err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one user, got %d", len(repo.users))
	}
	if _, err := service.Authenticate(DemoUsername, DemoPassword); err != nil {
		t.Fatalf("demo login: %v", err)
	}
}

func TestAuthServiceResetPassword(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService()
	if _, err := service.EnsureDemoUser(time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	user, err := service.FindByUsername("DEMO")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := service.ResetPassword(&user, "abc"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := service.ResetPassword(&user, "newpass1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := service.Authenticate(DemoUsername, "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
