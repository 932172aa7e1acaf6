package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
)

var (
	ErrFutureDate            = errors.New("date is in the future")
	ErrInvalidFlowIntensity  = errors.New("invalid flow intensity")
	ErrNotesTooLong          = errors.New("notes too long")
	ErrMoodRatingOutOfRange  = errors.New("mood rating out of range")
	ErrEnergyLevelOutOfRange = errors.New("energy level out of range")
	ErrInvalidSymptomTag     = errors.New("invalid symptom tag")
)

const (
	MinMoodRating  = 1
	MaxMoodRating  = 5
	MinEnergyLevel = 1
	MaxEnergyLevel = 10

	MaxNotesLength      = 500
	maxSymptomTagLength = 80
)

type PeriodInput struct {
	StartDate     time.Time
	FlowIntensity string
	Cramping      bool
	Notes         string
}

type SymptomInput struct {
	Date        time.Time
	Symptoms    []string
	MoodRating  int
	EnergyLevel int
}

func NewPeriodEntry(input PeriodInput, now time.Time) (models.PeriodEntry, error) {
	if input.StartDate.IsZero() {
		return models.PeriodEntry{}, ErrInvalidDate
	}
	if input.StartDate.After(now.Add(dayDuration)) {
		return models.PeriodEntry{}, ErrFutureDate
	}

	flow := strings.ToLower(strings.TrimSpace(input.FlowIntensity))
	if !models.IsValidFlowIntensity(flow) {
		return models.PeriodEntry{}, ErrInvalidFlowIntensity
	}

	notes := strings.TrimSpace(input.Notes)
	if len([]rune(notes)) > MaxNotesLength {
		return models.PeriodEntry{}, ErrNotesTooLong
	}

	return models.PeriodEntry{
		StartDate:     input.StartDate,
		FlowIntensity: flow,
		Cramping:      input.Cramping,
		Notes:         notes,
		LoggedAt:      now,
		Duration:      nil,
	}, nil
}

func NewSymptomEntry(input SymptomInput, now time.Time) (models.SymptomEntry, error) {
	date := input.Date
	if date.IsZero() {
		date = now
	}
	if date.After(now.Add(dayDuration)) {
		return models.SymptomEntry{}, ErrFutureDate
	}
	if input.MoodRating < MinMoodRating || input.MoodRating > MaxMoodRating {
		return models.SymptomEntry{}, ErrMoodRatingOutOfRange
	}
	if input.EnergyLevel < MinEnergyLevel || input.EnergyLevel > MaxEnergyLevel {
		return models.SymptomEntry{}, ErrEnergyLevelOutOfRange
	}

	tags, err := normalizeSymptomTags(input.Symptoms)
	if err != nil {
		return models.SymptomEntry{}, err
	}

	return models.SymptomEntry{
		Date:        date,
		Symptoms:    tags,
		MoodRating:  input.MoodRating,
		EnergyLevel: input.EnergyLevel,
		LoggedAt:    now,
	}, nil
}

func normalizeSymptomTags(raw []string) ([]string, error) {
	tags := make([]string, 0, len(raw))
	for _, value := range raw {
		tag := strings.ToLower(strings.TrimSpace(value))
		if tag == "" || len([]rune(tag)) > maxSymptomTagLength {
			return nil, ErrInvalidSymptomTag
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
