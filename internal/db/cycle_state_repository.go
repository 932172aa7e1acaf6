package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
	"github.com/terraincognita07/periodtracker/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CycleStateRepository keeps one JSON blob of CycleState per user.
type CycleStateRepository struct {
	database *gorm.DB
	now      func() time.Time
}

func NewCycleStateRepository(database *gorm.DB) *CycleStateRepository {
	return &CycleStateRepository{database: database, now: time.Now}
}

func (repo *CycleStateRepository) Load(userID uint) (models.CycleState, bool, error) {
	var record models.CycleStateRecord
	err := repo.database.Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CycleState{}, false, nil
	}
	if err != nil {
		return models.CycleState{}, false, fmt.Errorf("load cycle state for user %d: %w", userID, err)
	}
	return record.Payload, true, nil
}

func (repo *CycleStateRepository) Save(userID uint, state models.CycleState) error {
	record := models.CycleStateRecord{
		UserID:    userID,
		Payload:   state,
		UpdatedAt: repo.now().UTC(),
	}
	err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("save cycle state for user %d: %w", userID, err)
	}
	return nil
}

// ForUser binds the repository to one user as a services.StateStore.
func (repo *CycleStateRepository) ForUser(userID uint) services.StateStore {
	return userStateStore{repo: repo, userID: userID}
}

type userStateStore struct {
	repo   *CycleStateRepository
	userID uint
}

func (store userStateStore) Load() (models.CycleState, bool, error) {
	return store.repo.Load(store.userID)
}

func (store userStateStore) Save(state models.CycleState) error {
	return store.repo.Save(store.userID, state)
}
