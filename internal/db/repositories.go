package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	CycleStates *CycleStateRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		CycleStates: NewCycleStateRepository(database),
	}
}
