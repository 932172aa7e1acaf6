package models

import "time"

const (
	FlowLight    = "light"
	FlowModerate = "moderate"
	FlowHeavy    = "heavy"
)

const DefaultCycleLength = 28

type Phase string

const (
	PhaseMenstrual  Phase = "Menstrual"
	PhaseFollicular Phase = "Follicular"
	PhaseOvulation  Phase = "Ovulation"
	PhaseLuteal     Phase = "Luteal"
)

func FlowIntensities() []string {
	return []string{FlowLight, FlowModerate, FlowHeavy}
}

func IsValidFlowIntensity(flow string) bool {
	switch flow {
	case FlowLight, FlowModerate, FlowHeavy:
		return true
	default:
		return false
	}
}

// PeriodEntry marks the first day of menstrual flow.
type PeriodEntry struct {
	StartDate     time.Time `json:"startDate"`
	FlowIntensity string    `json:"flowIntensity"`
	Cramping      bool      `json:"cramping"`
	Notes         string    `json:"notes"`
	LoggedAt      time.Time `json:"loggedAt"`
	Duration      *int      `json:"duration"`
}

type SymptomEntry struct {
	Date        time.Time `json:"date"`
	Symptoms    []string  `json:"symptoms"`
	MoodRating  int       `json:"moodRating"`
	EnergyLevel int       `json:"energyLevel"`
	LoggedAt    time.Time `json:"loggedAt"`
}

// CycleState is persisted as a single blob; both logs are append-only.
type CycleState struct {
	Periods            []PeriodEntry  `json:"periods"`
	Symptoms           []SymptomEntry `json:"symptoms"`
	AverageCycleLength int            `json:"averageCycleLength"`
}

func NewCycleState() CycleState {
	return CycleState{
		Periods:            []PeriodEntry{},
		Symptoms:           []SymptomEntry{},
		AverageCycleLength: DefaultCycleLength,
	}
}

// Clone returns a copy that shares no slices with the receiver.
func (state CycleState) Clone() CycleState {
	cloned := CycleState{
		Periods:            make([]PeriodEntry, len(state.Periods)),
		Symptoms:           make([]SymptomEntry, len(state.Symptoms)),
		AverageCycleLength: state.AverageCycleLength,
	}
	for index, period := range state.Periods {
		if period.Duration != nil {
			duration := *period.Duration
			period.Duration = &duration
		}
		cloned.Periods[index] = period
	}
	for index, symptom := range state.Symptoms {
		symptom.Symptoms = append([]string{}, symptom.Symptoms...)
		cloned.Symptoms[index] = symptom
	}
	return cloned
}

type CycleStateRecord struct {
	UserID    uint       `gorm:"primaryKey;autoIncrement:false"`
	Payload   CycleState `gorm:"serializer:json;not null"`
	UpdatedAt time.Time
}

func (CycleStateRecord) TableName() string {
	return "cycle_states"
}
