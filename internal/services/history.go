package services

import (
	"fmt"
	"strings"
	"time"
)

type PeriodHistoryItem struct {
	Number        int    `json:"number"`
	StartDate     string `json:"start_date"`
	Flow          string `json:"flow"`
	FlowIntensity string `json:"flow_intensity"`
	Cramps        string `json:"cramps"`
	Cramping      bool   `json:"cramping"`
	Notes         string `json:"notes,omitempty"`
}

type SymptomHistoryItem struct {
	Date     string   `json:"date"`
	Mood     string   `json:"mood"`
	Energy   string   `json:"energy"`
	Symptoms string   `json:"symptoms"`
	Tags     []string `json:"tags"`
}

type History struct {
	Periods  []PeriodHistoryItem  `json:"periods"`
	Symptoms []SymptomHistoryItem `json:"symptoms"`
}

func BuildHistory(model *CycleModel, location *time.Location) History {
	state := model.State()
	history := History{
		Periods:  make([]PeriodHistoryItem, 0, len(state.Periods)),
		Symptoms: make([]SymptomHistoryItem, 0, len(state.Symptoms)),
	}

	for index, period := range state.Periods {
		cramps := "No"
		if period.Cramping {
			cramps = "Yes"
		}
		history.Periods = append(history.Periods, PeriodHistoryItem{
			Number:        len(state.Periods) - index,
			StartDate:     FormatDisplayDate(period.StartDate, location),
			Flow:          CapitalizeTag(period.FlowIntensity),
			FlowIntensity: period.FlowIntensity,
			Cramps:        cramps,
			Cramping:      period.Cramping,
			Notes:         period.Notes,
		})
	}

	for _, entry := range state.Symptoms {
		history.Symptoms = append(history.Symptoms, SymptomHistoryItem{
			Date:     FormatDisplayDate(entry.Date, location),
			Mood:     MoodEmoji(entry.MoodRating) + " " + FormatMoodScore(entry.MoodRating),
			Energy:   formatEnergyScore(entry.EnergyLevel),
			Symptoms: formatSymptomList(entry.Symptoms),
			Tags:     append([]string{}, entry.Symptoms...),
		})
	}

	return history
}

func formatSymptomList(tags []string) string {
	if len(tags) == 0 {
		return "None"
	}
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		labels = append(labels, CapitalizeTag(tag))
	}
	return strings.Join(labels, ", ")
}

func formatEnergyScore(level int) string {
	return fmt.Sprintf("%d/%d", level, MaxEnergyLevel)
}
