package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/periodtracker/internal/i18n"
	"github.com/terraincognita07/periodtracker/internal/models"
	"github.com/terraincognita07/periodtracker/internal/services"
	"github.com/terraincognita07/periodtracker/internal/storage"
	"go.uber.org/zap"
)

type menuItem struct {
	key      string
	labelKey string
	run      func(*Tracker, context.Context) error
}

var menuItems = []menuItem{
	{key: "1", labelKey: "cli.menu.log_period", run: (*Tracker).logPeriod},
	{key: "2", labelKey: "cli.menu.log_symptoms", run: (*Tracker).logSymptoms},
	{key: "3", labelKey: "cli.menu.dashboard", run: (*Tracker).showDashboard},
	{key: "4", labelKey: "cli.menu.calendar", run: (*Tracker).showCalendar},
	{key: "5", labelKey: "cli.menu.history", run: (*Tracker).showHistory},
	{key: "6", labelKey: "cli.menu.insights", run: (*Tracker).showInsights},
	{key: "7", labelKey: "cli.menu.settings", run: (*Tracker).editSettings},
	{key: "8", labelKey: "cli.menu.export", run: (*Tracker).exportBackup},
	{key: "9", labelKey: "cli.menu.quit"},
}

var weekdayKeys = []string{"weekday.sun", "weekday.mon", "weekday.tue", "weekday.wed", "weekday.thu", "weekday.fri", "weekday.sat"}

type TrackerOptions struct {
	Store     services.StateStore
	Advice    *services.AdviceService
	I18n      *i18n.Manager
	Language  string
	Location  *time.Location
	ExportDir string
	Metrics   services.SessionMetrics
	Logger    *zap.Logger
	Now       func() time.Time
}

// Tracker is the terminal front-end: a sequential menu loop over one
// locally stored cycle state.
type Tracker struct {
	prompt    *prompter
	styles    styles
	out       io.Writer
	store     services.StateStore
	advice    *services.AdviceService
	location  *time.Location
	exportDir string
	metrics   services.SessionMetrics
	logger    *zap.Logger
	now       func() time.Time
	session   *services.Session
}

func NewTracker(in io.Reader, out io.Writer, options TrackerOptions) *Tracker {
	tracker := &Tracker{
		prompt:    newPrompter(in, out, options.I18n, options.Language),
		styles:    newStyles(out),
		out:       out,
		store:     options.Store,
		advice:    options.Advice,
		location:  options.Location,
		exportDir: options.ExportDir,
		metrics:   options.Metrics,
		logger:    options.Logger,
		now:       options.Now,
	}
	if tracker.location == nil {
		tracker.location = time.UTC
	}
	if tracker.advice == nil {
		tracker.advice = services.NewAdviceService(nil, services.AdviceOptions{})
	}
	if tracker.logger == nil {
		tracker.logger = zap.NewNop()
	}
	if tracker.now == nil {
		tracker.now = time.Now
	}
	if tracker.exportDir == "" {
		tracker.exportDir = "."
	}
	return tracker
}

// Run serves the menu until the user quits or input ends. The state is
// written after every change and once more on exit.
func (tracker *Tracker) Run(ctx context.Context) error {
	session, err := tracker.openSession()
	if err != nil {
		return err
	}
	tracker.session = session

	fmt.Fprintln(tracker.out, tracker.styles.title.Render("🌸 "+tracker.prompt.message("app.title")))
	for {
		if ctx.Err() != nil {
			return tracker.finish()
		}

		tracker.printMenu()
		item, err := ask(tracker.prompt, tracker.text("cli.choose_option"), tracker.parseMenuChoice)
		if errors.Is(err, io.EOF) {
			return tracker.finish()
		}
		if err != nil {
			return err
		}
		if item.run == nil {
			return tracker.finish()
		}

		if err := item.run(tracker, ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return tracker.finish()
			}
			return err
		}
	}
}

func (tracker *Tracker) openSession() (*services.Session, error) {
	session, err := services.OpenSession(tracker.store, tracker.metrics)
	if errors.Is(err, storage.ErrCorruptStateFile) {
		tracker.logger.Warn("state file unreadable, starting with empty history", zap.Error(err))
		fmt.Fprintln(tracker.out, tracker.styles.warning.Render(tracker.text("cli.state_unreadable")))
		return services.NewSession(services.NewCycleModel(models.NewCycleState()), tracker.store, tracker.metrics), nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (tracker *Tracker) finish() error {
	if err := tracker.session.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(tracker.out, tracker.styles.muted.Render(tracker.text("cli.goodbye")))
	return nil
}

func (tracker *Tracker) printMenu() {
	fmt.Fprintln(tracker.out)
	for _, item := range menuItems {
		fmt.Fprintf(tracker.out, "  %s) %s\n", item.key, tracker.text(item.labelKey))
	}
}

// parseMenuChoice accepts an item number or its label in the active language.
func (tracker *Tracker) parseMenuChoice(raw string) (menuItem, error) {
	for _, item := range menuItems {
		if raw == item.key || strings.EqualFold(raw, tracker.text(item.labelKey)) {
			return item, nil
		}
	}
	return menuItem{}, errInvalidChoice
}

func (tracker *Tracker) text(key string, args ...any) string {
	return tracker.prompt.message(key, args...)
}

func (tracker *Tracker) heading(text string) {
	fmt.Fprintln(tracker.out)
	fmt.Fprintln(tracker.out, tracker.styles.heading.Render(text))
}

func (tracker *Tracker) logPeriod(_ context.Context) error {
	tracker.heading(tracker.text("cli.menu.log_period"))
	now := tracker.now()

	start, err := ask(tracker.prompt, tracker.text("cli.prompt.start_date"), dayParser(now, tracker.location))
	if err != nil {
		return err
	}
	flow, err := ask(tracker.prompt, tracker.text("cli.prompt.flow"), parseFlow)
	if err != nil {
		return err
	}
	cramping, err := ask(tracker.prompt, tracker.text("cli.prompt.cramping"), parseYesNo)
	if err != nil {
		return err
	}
	notes, err := ask(tracker.prompt, tracker.text("cli.prompt.notes"), parseNotes)
	if err != nil {
		return err
	}

	_, err = tracker.session.LogPeriod(services.PeriodInput{
		StartDate:     start,
		FlowIntensity: flow,
		Cramping:      cramping,
		Notes:         notes,
	}, now)
	if err != nil {
		return tracker.reportEntryError(err)
	}
	fmt.Fprintln(tracker.out, tracker.styles.success.Render(tracker.text("message.period_logged")))
	fmt.Fprintln(tracker.out, tracker.text("cli.average_cycle_length", tracker.session.Model().AverageCycleLength()))
	return nil
}

func (tracker *Tracker) logSymptoms(_ context.Context) error {
	tracker.heading(tracker.text("cli.menu.log_symptoms"))
	now := tracker.now()

	date, err := ask(tracker.prompt, tracker.text("cli.prompt.date"), dayParser(now, tracker.location))
	if err != nil {
		return err
	}
	for index, symptom := range models.DefaultBuiltinSymptoms() {
		fmt.Fprintf(tracker.out, "  %2d) %s %s\n", index+1, symptom.Icon, services.CapitalizeTag(symptom.Tag))
	}
	tags, err := ask(tracker.prompt, tracker.text("cli.prompt.symptoms"), parseSymptomSelection)
	if err != nil {
		return err
	}
	mood, err := ask(tracker.prompt, tracker.text("cli.prompt.mood", services.MinMoodRating, services.MaxMoodRating),
		intRangeParser(services.MinMoodRating, services.MaxMoodRating, services.ErrMoodRatingOutOfRange))
	if err != nil {
		return err
	}
	energy, err := ask(tracker.prompt, tracker.text("cli.prompt.energy", services.MinEnergyLevel, services.MaxEnergyLevel),
		intRangeParser(services.MinEnergyLevel, services.MaxEnergyLevel, services.ErrEnergyLevelOutOfRange))
	if err != nil {
		return err
	}

	_, err = tracker.session.LogSymptom(services.SymptomInput{
		Date:        date,
		Symptoms:    tags,
		MoodRating:  mood,
		EnergyLevel: energy,
	}, now)
	if err != nil {
		return tracker.reportEntryError(err)
	}
	fmt.Fprintln(tracker.out, tracker.styles.success.Render(tracker.text("message.symptoms_logged")))
	return nil
}

// reportEntryError prints validation failures and keeps the loop going;
// anything else ends the session.
func (tracker *Tracker) reportEntryError(err error) error {
	for _, mapping := range promptErrorCodes {
		if errors.Is(err, mapping.target) {
			tracker.prompt.problem(err)
			return nil
		}
	}
	return err
}

func (tracker *Tracker) showDashboard(_ context.Context) error {
	summary := services.BuildDashboard(tracker.session.Model(), tracker.now(), tracker.location)

	cycleDay, phase, nextPeriod, lastPeriod := "-", "-", "-", "-"
	if summary.HasPeriods {
		cycleDay = strconv.Itoa(summary.CycleDay)
		phase = tracker.text("phase." + string(summary.Phase))
	}
	if summary.NextPeriod != nil {
		nextPeriod = services.FormatDisplayDate(*summary.NextPeriod, tracker.location)
	}
	if summary.LastPeriod != nil {
		lastPeriod = services.FormatDisplayDate(*summary.LastPeriod, tracker.location)
	}
	mood := tracker.text("dashboard.not_tracked")
	if summary.TodayMood != nil {
		mood = summary.MoodEmoji + " " + services.FormatMoodScore(*summary.TodayMood)
	}

	rows := [][2]string{
		{tracker.text("cli.dashboard.cycle_day"), cycleDay},
		{tracker.text("cli.dashboard.phase"), phase},
		{tracker.text("cli.dashboard.next_period"), nextPeriod},
		{tracker.text("cli.dashboard.last_period"), lastPeriod},
		{tracker.text("cli.dashboard.average_cycle"), tracker.text("cli.days", summary.AverageCycleLength)},
		{tracker.text("cli.dashboard.periods_logged"), strconv.Itoa(summary.PeriodsCount)},
		{tracker.text("cli.dashboard.today_mood"), mood},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, tracker.styles.label.Render(row[0])+row[1])
	}

	tracker.heading(tracker.text("cli.menu.dashboard"))
	fmt.Fprintln(tracker.out, tracker.styles.box.Render(strings.Join(lines, "\n")))
	return nil
}

func (tracker *Tracker) showCalendar(_ context.Context) error {
	now := tracker.now()
	today := services.DateAtLocation(now, tracker.location)
	current := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, tracker.location)

	monthStart, err := ask(tracker.prompt, tracker.text("cli.prompt.month"), func(raw string) (time.Time, error) {
		if raw == "" {
			return current, nil
		}
		return services.ParseMonthInput(raw, tracker.location)
	})
	if err != nil {
		return err
	}

	month := services.BuildCalendarMonth(tracker.session.Model(), monthStart, now, tracker.location)
	monthName := tracker.text("month." + strings.ToLower(monthStart.Month().String()))
	tracker.heading(fmt.Sprintf("%s %d", monthName, monthStart.Year()))

	headers := make([]string, 0, len(weekdayKeys))
	for _, key := range weekdayKeys {
		headers = append(headers, tracker.text(key))
	}
	fmt.Fprintln(tracker.out, renderCalendar(month, headers, tracker.styles))
	fmt.Fprintln(tracker.out, tracker.text("cli.calendar.legend",
		tracker.styles.period.Render("●"), tracker.styles.ovulation.Render("●"), tracker.styles.today.Render(" ")))
	return nil
}

func renderCalendar(month services.CalendarMonth, headers []string, palette styles) string {
	var builder strings.Builder
	for _, weekday := range headers {
		fmt.Fprintf(&builder, "%4s", weekday)
	}
	builder.WriteString("\n")

	column := 0
	for ; column < month.LeadingBlanks; column++ {
		builder.WriteString("    ")
	}
	for _, day := range month.Days {
		cell := fmt.Sprintf("%3d", day.Day)
		switch {
		case day.IsPeriod:
			cell = palette.period.Render(cell)
		case day.IsOvulation:
			cell = palette.ovulation.Render(cell)
		}
		if day.IsToday {
			cell = palette.today.Render(cell)
		}
		builder.WriteString(" " + cell)

		column++
		if column%7 == 0 {
			builder.WriteString("\n")
		}
	}
	return strings.TrimRight(builder.String(), "\n")
}

func (tracker *Tracker) showHistory(_ context.Context) error {
	history := services.BuildHistory(tracker.session.Model(), tracker.location)

	tracker.heading(tracker.text("cli.history.periods"))
	if len(history.Periods) == 0 {
		fmt.Fprintln(tracker.out, tracker.styles.muted.Render(tracker.text("cli.history.no_periods")))
	}
	for _, period := range history.Periods {
		cramps := tracker.text("cli.no")
		if period.Cramping {
			cramps = tracker.text("cli.yes")
		}
		flow := tracker.text("flow." + period.FlowIntensity)
		line := tracker.text("cli.history.period_row", period.Number, period.StartDate, flow, cramps)
		if period.Notes != "" {
			line += "  " + tracker.styles.muted.Render(period.Notes)
		}
		fmt.Fprintln(tracker.out, line)
	}

	if stats := services.BuildCycleStats(tracker.session.Model()); len(stats.CycleLengths) > 0 {
		lengths := make([]string, 0, len(stats.CycleLengths))
		for _, length := range stats.CycleLengths {
			lengths = append(lengths, strconv.Itoa(length))
		}
		fmt.Fprintln(tracker.out, tracker.styles.muted.Render(tracker.text(
			"cli.history.cycle_lengths", strings.Join(lengths, ", "), stats.ShortestCycle, stats.LongestCycle,
		)))
	}

	tracker.heading(tracker.text("cli.history.symptoms"))
	if len(history.Symptoms) == 0 {
		fmt.Fprintln(tracker.out, tracker.styles.muted.Render(tracker.text("cli.history.no_symptoms")))
	}
	for _, entry := range history.Symptoms {
		symptoms := tracker.text("cli.none")
		if len(entry.Tags) > 0 {
			symptoms = entry.Symptoms
		}
		fmt.Fprintln(tracker.out, tracker.text("cli.history.symptom_row", entry.Date, entry.Mood, entry.Energy, symptoms))
	}
	return nil
}

func (tracker *Tracker) showInsights(ctx context.Context) error {
	tracker.heading(tracker.text("cli.menu.insights"))
	feeling, err := ask(tracker.prompt, tracker.text("cli.prompt.feeling"), parseFeeling)
	if err != nil {
		return err
	}

	advice, err := tracker.advice.Advise(ctx, tracker.session.Model(), feeling, tracker.now())
	if err != nil {
		return tracker.reportEntryError(err)
	}
	fmt.Fprintln(tracker.out, tracker.styles.box.Render(advice.Text))
	if advice.Source == services.AdviceSourceFallback {
		fmt.Fprintln(tracker.out, tracker.styles.muted.Render(tracker.text("cli.insights.offline")))
	}
	return nil
}

func (tracker *Tracker) editSettings(_ context.Context) error {
	tracker.heading(tracker.text("cli.menu.settings"))
	current := tracker.session.Model().AverageCycleLength()
	question := tracker.text("cli.prompt.cycle_length", services.MinCycleLength, services.MaxCycleLength, current)

	days, err := ask(tracker.prompt, question, func(raw string) (int, error) {
		if raw == "" {
			return current, nil
		}
		return intRangeParser(services.MinCycleLength, services.MaxCycleLength, services.ErrCycleLengthOutOfRange)(raw)
	})
	if err != nil {
		return err
	}
	if days == current {
		return nil
	}

	if err := tracker.session.UpdateCycleLength(days); err != nil {
		return tracker.reportEntryError(err)
	}
	fmt.Fprintln(tracker.out, tracker.styles.success.Render(tracker.text("message.cycle_length_updated", days)))
	return nil
}

func (tracker *Tracker) exportBackup(_ context.Context) error {
	payload, err := services.ExportStateJSON(tracker.session.Model().State())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(tracker.exportDir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(tracker.exportDir, services.ExportFilename(tracker.now(), tracker.location))
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintln(tracker.out, tracker.styles.success.Render(tracker.text("cli.backup_written", path)))
	return nil
}
