package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
)

const DisplayDateLayout = "01/02/2006"

var moodEmojis = []string{"😢", "😞", "😐", "🙂", "😄"}

const neutralMoodEmoji = "😐"

type DashboardSummary struct {
	HasPeriods         bool         `json:"has_periods"`
	CycleDay           int          `json:"cycle_day"`
	Phase              models.Phase `json:"phase,omitempty"`
	NextPeriod         *time.Time   `json:"next_period,omitempty"`
	LastPeriod         *time.Time   `json:"last_period,omitempty"`
	AverageCycleLength int          `json:"average_cycle_length"`
	PeriodsCount       int          `json:"periods_count"`
	TodayMood          *int         `json:"today_mood,omitempty"`
	MoodEmoji          string       `json:"mood_emoji"`
}

func BuildDashboard(model *CycleModel, now time.Time, location *time.Location) DashboardSummary {
	summary := DashboardSummary{
		AverageCycleLength: model.AverageCycleLength(),
		PeriodsCount:       model.PeriodCount(),
		MoodEmoji:          neutralMoodEmoji,
	}

	if last, ok := model.LastPeriod(); ok {
		day, _ := model.CurrentCycleDay(now)
		next, _ := model.PredictedNextPeriod()
		lastStart := last.StartDate
		summary.HasPeriods = true
		summary.CycleDay = day
		summary.Phase = CyclePhase(day)
		summary.NextPeriod = &next
		summary.LastPeriod = &lastStart
	}

	if today, ok := model.TodaySymptoms(now, location); ok {
		mood := today.MoodRating
		summary.TodayMood = &mood
		summary.MoodEmoji = MoodEmoji(mood)
	}

	return summary
}

func MoodEmoji(rating int) string {
	if rating < 1 || rating > len(moodEmojis) {
		return neutralMoodEmoji
	}
	return moodEmojis[rating-1]
}

func FormatDisplayDate(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Format(DisplayDateLayout)
}

// CapitalizeTag renders a hyphenated tag as "Mood swings".
func CapitalizeTag(tag string) string {
	if tag == "" {
		return ""
	}
	runes := []rune(tag)
	first := strings.ToUpper(string(runes[0]))
	return first + strings.ReplaceAll(string(runes[1:]), "-", " ")
}

func FormatMoodScore(rating int) string {
	return fmt.Sprintf("%d/%d", rating, MaxMoodRating)
}
