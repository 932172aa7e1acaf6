package services

import (
	"sort"

	"github.com/terraincognita07/periodtracker/internal/models"
)

const (
	maxTrendPoints      = 12
	reliableTrendPoints = 3
)

type SymptomFrequency struct {
	Tag          string `json:"tag"`
	Label        string `json:"label"`
	Icon         string `json:"icon,omitempty"`
	Count        int    `json:"count"`
	TotalEntries int    `json:"total_entries"`
}

// CycleStats summarizes the whole log. Cycle lengths are the gaps between
// adjacent period starts in logging order, trimmed to the latest points.
type CycleStats struct {
	CycleLengths       []int              `json:"cycle_lengths"`
	AverageCycleLength int                `json:"average_cycle_length"`
	MedianCycleLength  int                `json:"median_cycle_length"`
	ShortestCycle      int                `json:"shortest_cycle"`
	LongestCycle       int                `json:"longest_cycle"`
	HasReliableTrend   bool               `json:"has_reliable_trend"`
	AverageMood        float64            `json:"average_mood"`
	AverageEnergy      float64            `json:"average_energy"`
	SymptomFrequencies []SymptomFrequency `json:"symptom_frequencies"`
}

func BuildCycleStats(model *CycleModel) CycleStats {
	state := model.State()
	lengths := CycleLengths(state.Periods)

	stats := CycleStats{
		CycleLengths:       TrimTrailingCycleLengths(lengths, maxTrendPoints),
		AverageCycleLength: model.AverageCycleLength(),
		HasReliableTrend:   len(lengths) >= reliableTrendPoints,
		SymptomFrequencies: symptomFrequencies(state.Symptoms),
	}

	if len(lengths) > 0 {
		sorted := append([]int{}, lengths...)
		sort.Ints(sorted)
		stats.ShortestCycle = sorted[0]
		stats.LongestCycle = sorted[len(sorted)-1]
		stats.MedianCycleLength = medianOfSorted(sorted)
	}

	if len(state.Symptoms) > 0 {
		moodTotal, energyTotal := 0, 0
		for _, entry := range state.Symptoms {
			moodTotal += entry.MoodRating
			energyTotal += entry.EnergyLevel
		}
		stats.AverageMood = roundTenth(float64(moodTotal) / float64(len(state.Symptoms)))
		stats.AverageEnergy = roundTenth(float64(energyTotal) / float64(len(state.Symptoms)))
	}
	return stats
}

func CycleLengths(periods []models.PeriodEntry) []int {
	if len(periods) < 2 {
		return []int{}
	}
	lengths := make([]int, 0, len(periods)-1)
	for index := 1; index < len(periods); index++ {
		lengths = append(lengths, DaysBetween(periods[index-1].StartDate, periods[index].StartDate))
	}
	return lengths
}

func TrimTrailingCycleLengths(lengths []int, maxPoints int) []int {
	if maxPoints <= 0 || len(lengths) <= maxPoints {
		return lengths
	}
	return lengths[len(lengths)-maxPoints:]
}

func medianOfSorted(sorted []int) int {
	middle := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[middle]
	}
	return roundHalfUp(float64(sorted[middle-1]+sorted[middle]) / 2)
}

// symptomFrequencies counts each tag once per entry, most frequent first.
func symptomFrequencies(entries []models.SymptomEntry) []SymptomFrequency {
	counts := make(map[string]int)
	for _, entry := range entries {
		seen := make(map[string]struct{}, len(entry.Symptoms))
		for _, tag := range entry.Symptoms {
			if _, duplicate := seen[tag]; duplicate {
				continue
			}
			seen[tag] = struct{}{}
			counts[tag]++
		}
	}

	result := make([]SymptomFrequency, 0, len(counts))
	for tag, count := range counts {
		icon, _ := models.BuiltinSymptomIcon(tag)
		result = append(result, SymptomFrequency{
			Tag:          tag,
			Label:        CapitalizeTag(tag),
			Icon:         icon,
			Count:        count,
			TotalEntries: len(entries),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Tag < result[j].Tag
		}
		return result[i].Count > result[j].Count
	})
	return result
}

func roundTenth(value float64) float64 {
	return float64(roundHalfUp(value*10)) / 10
}
