package db

import (
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/periodtracker/internal/models"
	"github.com/terraincognita07/periodtracker/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "periodtracker.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return database
}

func createTestUser(t *testing.T, repos *Repositories, username string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		DisplayName:  username,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestOpenSQLiteAppliesEmbeddedMigrations(t *testing.T) {
	database := openTestDatabase(t)

	var versions []string
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version`).Scan(&versions).Error; err != nil {
		t.Fatalf("load versions: %v", err)
	}
	if diff := cmp.Diff([]string{"0001", "0002"}, versions); diff != "" {
		t.Fatalf("unexpected applied migrations (-want +got):\n%s", diff)
	}

	for _, table := range []string{"users", "cycle_states"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestMigrationRunnerIsIdempotentAndRejectsDuplicates(t *testing.T) {
	database := openTestDatabase(t)

	files := fstest.MapFS{
		"0003_add_notes.sql": {Data: []byte("CREATE TABLE extra (id INTEGER PRIMARY KEY);")},
		"readme.txt":         {Data: []byte("ignored")},
	}
	runner := newMigrationRunner(database, files, zap.NewNop())
	if err := runner.Apply(); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := runner.Apply(); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	duplicate := newMigrationRunner(database, fstest.MapFS{
		"0004_a.sql": {Data: []byte("SELECT 1;")},
		"0004_b.sql": {Data: []byte("SELECT 1;")},
	}, zap.NewNop())
	if err := duplicate.Apply(); err == nil {
		t.Fatal("expected duplicate migration versions to fail")
	}
}

func TestUserRepositoryUniqueUsername(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	createTestUser(t, repos, "jane")

	exists, err := repos.Users.ExistsByUsername("jane")
	if err != nil || !exists {
		t.Fatalf("expected jane to exist, got exists=%v err=%v", exists, err)
	}

	duplicate := models.User{Username: "jane", Email: "x@example.com", PasswordHash: "hash", CreatedAt: time.Now()}
	if err := repos.Users.Create(&duplicate); err == nil {
		t.Fatal("expected unique index to reject duplicate username")
	}

	if _, err := repos.Users.FindByUsername("nobody"); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCycleStateRepositoryRoundTrip(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	jane := createTestUser(t, repos, "jane")
	kim := createTestUser(t, repos, "kim")

	store := repos.CycleStates.ForUser(jane.ID)
	if _, found, err := store.Load(); err != nil || found {
		t.Fatalf("expected no state yet, got found=%v err=%v", found, err)
	}

	session, err := services.OpenSession(store, nil)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	if _, err := session.LogPeriod(services.PeriodInput{StartDate: now.AddDate(0, 0, -28), FlowIntensity: "heavy"}, now); err != nil {
		t.Fatalf("log first period: %v", err)
	}
	if _, err := session.LogPeriod(services.PeriodInput{StartDate: now, FlowIntensity: "light", Cramping: true}, now); err != nil {
		t.Fatalf("log second period: %v", err)
	}
	if _, err := session.LogSymptom(services.SymptomInput{Date: now, Symptoms: []string{"cramps"}, MoodRating: 2, EnergyLevel: 4}, now); err != nil {
		t.Fatalf("log symptom: %v", err)
	}

	reloaded, found, err := repos.CycleStates.ForUser(jane.ID).Load()
	if err != nil || !found {
		t.Fatalf("expected saved state, got found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(session.Model().State(), reloaded); diff != "" {
		t.Fatalf("reloaded state mismatch (-want +got):\n%s", diff)
	}
	if reloaded.AverageCycleLength != 28 {
		t.Fatalf("expected average 28, got %d", reloaded.AverageCycleLength)
	}

	if _, found, _ := repos.CycleStates.ForUser(kim.ID).Load(); found {
		t.Fatal("expected state to be scoped per user")
	}
}
