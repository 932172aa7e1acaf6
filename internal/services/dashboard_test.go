package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
)

func TestBuildDashboardWithoutHistory(t *testing.T) {
	t.Parallel()

	summary := BuildDashboard(NewCycleModel(models.NewCycleState()), time.Now(), time.UTC)
	if summary.HasPeriods {
		t.Fatal("expected no periods")
	}
	if summary.NextPeriod != nil || summary.LastPeriod != nil {
		t.Fatal("expected no dates for empty history")
	}
	if summary.AverageCycleLength != models.DefaultCycleLength {
		t.Fatalf("expected default average, got %d", summary.AverageCycleLength)
	}
	if summary.TodayMood != nil || summary.MoodEmoji != "😐" {
		t.Fatalf("expected neutral mood placeholder, got %v %q", summary.TodayMood, summary.MoodEmoji)
	}
}

func TestBuildDashboardWithHistory(t *testing.T) {
	t.Parallel()

	model := NewCycleModel(models.NewCycleState())
	model.LogPeriod(makePeriod("2026-01-01"))
	model.LogPeriod(makePeriod("2026-01-29"))
	now := mustParseDay("2026-02-12").Add(9 * time.Hour)
	model.LogSymptom(models.SymptomEntry{Date: now, MoodRating: 4, EnergyLevel: 6})

	summary := BuildDashboard(model, now, time.UTC)
	if !summary.HasPeriods || summary.PeriodsCount != 2 {
		t.Fatalf("expected two periods, got %+v", summary)
	}
	if summary.CycleDay != 15 {
		t.Fatalf("expected cycle day 15, got %d", summary.CycleDay)
	}
	if summary.Phase != models.PhaseOvulation {
		t.Fatalf("expected ovulation phase, got %s", summary.Phase)
	}
	if summary.NextPeriod.Format("2006-01-02") != "2026-02-26" {
		t.Fatalf("expected next period 2026-02-26, got %s", summary.NextPeriod.Format("2006-01-02"))
	}
	if summary.TodayMood == nil || *summary.TodayMood != 4 || summary.MoodEmoji != "🙂" {
		t.Fatalf("expected mood 4 with 🙂, got %v %q", summary.TodayMood, summary.MoodEmoji)
	}
}

func TestMoodEmojiFallsBackToNeutral(t *testing.T) {
	t.Parallel()

	if MoodEmoji(1) != "😢" || MoodEmoji(5) != "😄" {
		t.Fatal("unexpected emoji for scale bounds")
	}
	if MoodEmoji(0) != "😐" || MoodEmoji(9) != "😐" {
		t.Fatal("expected neutral emoji outside the scale")
	}
}

func TestCapitalizeTag(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                  "",
		"cramps":            "Cramps",
		"mood-swings":       "Mood swings",
		"breast-tenderness": "Breast tenderness",
	}
	for input, want := range cases {
		if got := CapitalizeTag(input); got != want {
			t.Fatalf("CapitalizeTag(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBuildCalendarMonthMarksPeriodAndOvulation(t *testing.T) {
	t.Parallel()

	model := NewCycleModel(models.NewCycleState())
	model.LogPeriod(makePeriod("2026-10-03"))

	now := mustParseDay("2026-10-19")
	calendar := BuildCalendarMonth(model, mustParseDay("2026-10-01"), now, time.UTC)

	if calendar.Label != "October 2026" {
		t.Fatalf("unexpected label %q", calendar.Label)
	}
	if calendar.LeadingBlanks != 4 {
		t.Fatalf("expected 4 leading blanks for a Thursday start, got %d", calendar.LeadingBlanks)
	}
	if len(calendar.Days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(calendar.Days))
	}

	for _, day := range calendar.Days {
		wantPeriod := day.Day >= 3 && day.Day <= 8
		wantOvulation := day.Day >= 15 && day.Day <= 19
		if day.IsPeriod != wantPeriod {
			t.Fatalf("day %d period = %v, want %v", day.Day, day.IsPeriod, wantPeriod)
		}
		if day.IsOvulation != wantOvulation {
			t.Fatalf("day %d ovulation = %v, want %v", day.Day, day.IsOvulation, wantOvulation)
		}
		if day.IsToday != (day.Day == 19) {
			t.Fatalf("day %d today = %v", day.Day, day.IsToday)
		}
	}
}

func TestShiftMonthCrossesYears(t *testing.T) {
	t.Parallel()

	shifted := ShiftMonth(mustParseDay("2026-12-01"), 1)
	if shifted.Format("2006-01-02") != "2027-01-01" {
		t.Fatalf("expected 2027-01-01, got %s", shifted.Format("2006-01-02"))
	}
	shifted = ShiftMonth(mustParseDay("2026-01-01"), -1)
	if shifted.Format("2006-01-02") != "2025-12-01" {
		t.Fatalf("expected 2025-12-01, got %s", shifted.Format("2006-01-02"))
	}
}

func TestBuildHistoryNumbersPeriodsNewestHighest(t *testing.T) {
	t.Parallel()

	model := NewCycleModel(models.NewCycleState())
	first := makePeriod("2026-01-01")
	first.Cramping = true
	first.Notes = "rough start"
	model.LogPeriod(first)
	model.LogPeriod(makePeriod("2026-01-29"))
	model.LogSymptom(models.SymptomEntry{Date: mustParseDay("2026-01-30"), MoodRating: 2, EnergyLevel: 3, Symptoms: []string{"back-pain"}})
	model.LogSymptom(models.SymptomEntry{Date: mustParseDay("2026-01-31"), MoodRating: 5, EnergyLevel: 9, Symptoms: []string{}})

	history := BuildHistory(model, time.UTC)
	if history.Periods[0].Number != 2 || history.Periods[1].Number != 1 {
		t.Fatalf("expected numbering 2,1 got %d,%d", history.Periods[0].Number, history.Periods[1].Number)
	}
	if history.Periods[0].StartDate != "01/01/2026" || history.Periods[0].Cramps != "Yes" || history.Periods[0].Flow != "Moderate" {
		t.Fatalf("unexpected first period row %+v", history.Periods[0])
	}
	if history.Symptoms[0].Symptoms != "Back pain" || history.Symptoms[0].Mood != "😞 2/5" || history.Symptoms[0].Energy != "3/10" {
		t.Fatalf("unexpected first symptom row %+v", history.Symptoms[0])
	}
	if history.Periods[0].FlowIntensity != "moderate" || !history.Periods[0].Cramping {
		t.Fatalf("expected raw flow and cramping on first period row %+v", history.Periods[0])
	}
	if len(history.Symptoms[1].Tags) != 0 || history.Symptoms[0].Tags[0] != "back-pain" {
		t.Fatalf("expected raw tags on symptom rows %+v", history.Symptoms)
	}
	if history.Symptoms[1].Symptoms != "None" {
		t.Fatalf("expected None for empty tags, got %q", history.Symptoms[1].Symptoms)
	}
}
