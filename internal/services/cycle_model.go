package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
)

const (
	periodWindowDays      = 5
	ovulationCenterDay    = 14
	ovulationWindowRadius = 2

	MinCycleLength = 15
	MaxCycleLength = 90
)

var ErrCycleLengthOutOfRange = errors.New("cycle length out of range")

// CycleModel answers cycle questions over one user's append-only logs.
// It never performs I/O; persistence belongs to Session.
type CycleModel struct {
	state models.CycleState
}

func NewCycleModel(state models.CycleState) *CycleModel {
	restored := state.Clone()
	if restored.AverageCycleLength <= 0 {
		restored.AverageCycleLength = models.DefaultCycleLength
	}
	return &CycleModel{state: restored}
}

func (model *CycleModel) State() models.CycleState {
	return model.state.Clone()
}

func (model *CycleModel) Periods() []models.PeriodEntry {
	return model.State().Periods
}

func (model *CycleModel) Symptoms() []models.SymptomEntry {
	return model.State().Symptoms
}

func (model *CycleModel) PeriodCount() int {
	return len(model.state.Periods)
}

func (model *CycleModel) AverageCycleLength() int {
	return model.state.AverageCycleLength
}

func (model *CycleModel) LogPeriod(entry models.PeriodEntry) {
	model.state.Periods = append(model.state.Periods, entry)
	if average, ok := CalculateAverageCycleLength(model.state.Periods); ok && average > 0 {
		model.state.AverageCycleLength = average
	}
}

func (model *CycleModel) LogSymptom(entry models.SymptomEntry) {
	entry.Symptoms = append([]string{}, entry.Symptoms...)
	model.state.Symptoms = append(model.state.Symptoms, entry)
}

func (model *CycleModel) SetAverageCycleLength(days int) error {
	if days < MinCycleLength || days > MaxCycleLength {
		return ErrCycleLengthOutOfRange
	}
	model.state.AverageCycleLength = days
	return nil
}

func (model *CycleModel) LastPeriod() (models.PeriodEntry, bool) {
	if len(model.state.Periods) == 0 {
		return models.PeriodEntry{}, false
	}
	return model.state.Periods[len(model.state.Periods)-1], true
}

func (model *CycleModel) CurrentCycleDay(reference time.Time) (int, bool) {
	last, ok := model.LastPeriod()
	if !ok {
		return 0, false
	}
	return DaysBetween(last.StartDate, reference), true
}

func (model *CycleModel) PredictedNextPeriod() (time.Time, bool) {
	last, ok := model.LastPeriod()
	if !ok {
		return time.Time{}, false
	}
	return last.StartDate.AddDate(0, 0, model.state.AverageCycleLength), true
}

// IsPeriodDay uses a fixed six-day flow window per logged period,
// counted in calendar days of the candidate's location.
func (model *CycleModel) IsPeriodDay(candidate time.Time) bool {
	for _, period := range model.state.Periods {
		offset := CalendarDaysFrom(period.StartDate, candidate)
		if offset >= 0 && offset <= periodWindowDays {
			return true
		}
	}
	return false
}

// IsOvulationDay checks day 14 ±2 of the latest cycle only.
func (model *CycleModel) IsOvulationDay(candidate time.Time) bool {
	last, ok := model.LastPeriod()
	if !ok {
		return false
	}
	if candidate.Before(last.StartDate) {
		return false
	}
	daysSince := DaysBetween(last.StartDate, candidate)
	if daysSince <= 0 || daysSince >= model.state.AverageCycleLength {
		return false
	}
	offset := daysSince - ovulationCenterDay
	if offset < 0 {
		offset = -offset
	}
	return offset <= ovulationWindowRadius
}

func (model *CycleModel) TodaySymptoms(now time.Time, location *time.Location) (models.SymptomEntry, bool) {
	for _, entry := range model.state.Symptoms {
		if SameCalendarDay(entry.Date, now, location) {
			return entry, true
		}
	}
	return models.SymptomEntry{}, false
}

// CalculateAverageCycleLength averages adjacent gaps in logging order.
// It reports false when fewer than two periods exist.
func CalculateAverageCycleLength(periods []models.PeriodEntry) (int, bool) {
	if len(periods) < 2 {
		return 0, false
	}

	total := 0
	for index := 1; index < len(periods); index++ {
		total += DaysBetween(periods[index-1].StartDate, periods[index].StartDate)
	}
	return roundHalfUp(float64(total) / float64(len(periods)-1)), true
}

func CyclePhase(dayOfCycle int) models.Phase {
	switch {
	case dayOfCycle <= 5:
		return models.PhaseMenstrual
	case dayOfCycle <= 13:
		return models.PhaseFollicular
	case dayOfCycle <= 16:
		return models.PhaseOvulation
	default:
		return models.PhaseLuteal
	}
}
