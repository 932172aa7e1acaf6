package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
)

// StateStore persists a whole CycleState as one opaque blob.
// Load reports false when no history exists yet.
type StateStore interface {
	Load() (models.CycleState, bool, error)
	Save(state models.CycleState) error
}

type SessionMetrics interface {
	RecordPeriodLogged()
	RecordSymptomLogged()
}

type noopSessionMetrics struct{}

func (noopSessionMetrics) RecordPeriodLogged()  {}
func (noopSessionMetrics) RecordSymptomLogged() {}

// Session owns one user's CycleModel and writes it back after each mutation.
type Session struct {
	model   *CycleModel
	store   StateStore
	metrics SessionMetrics
}

func OpenSession(store StateStore, metrics SessionMetrics) (*Session, error) {
	state, found, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load cycle state: %w", err)
	}
	if !found {
		state = models.NewCycleState()
	}
	return NewSession(NewCycleModel(state), store, metrics), nil
}

func NewSession(model *CycleModel, store StateStore, metrics SessionMetrics) *Session {
	if metrics == nil {
		metrics = noopSessionMetrics{}
	}
	return &Session{model: model, store: store, metrics: metrics}
}

func (session *Session) Model() *CycleModel {
	return session.model
}

func (session *Session) LogPeriod(input PeriodInput, now time.Time) (models.PeriodEntry, error) {
	entry, err := NewPeriodEntry(input, now)
	if err != nil {
		return models.PeriodEntry{}, err
	}
	session.model.LogPeriod(entry)
	if err := session.Flush(); err != nil {
		return models.PeriodEntry{}, err
	}
	session.metrics.RecordPeriodLogged()
	return entry, nil
}

func (session *Session) LogSymptom(input SymptomInput, now time.Time) (models.SymptomEntry, error) {
	entry, err := NewSymptomEntry(input, now)
	if err != nil {
		return models.SymptomEntry{}, err
	}
	session.model.LogSymptom(entry)
	if err := session.Flush(); err != nil {
		return models.SymptomEntry{}, err
	}
	session.metrics.RecordSymptomLogged()
	return entry, nil
}

func (session *Session) UpdateCycleLength(days int) error {
	if err := session.model.SetAverageCycleLength(days); err != nil {
		return err
	}
	return session.Flush()
}

func (session *Session) Flush() error {
	if err := session.store.Save(session.model.State()); err != nil {
		return fmt.Errorf("save cycle state: %w", err)
	}
	return nil
}
