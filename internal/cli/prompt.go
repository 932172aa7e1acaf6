package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/periodtracker/internal/i18n"
	"github.com/terraincognita07/periodtracker/internal/models"
	"github.com/terraincognita07/periodtracker/internal/services"
)

var errInvalidChoice = errors.New("invalid choice")

type errorCode struct {
	target error
	code   string
}

var promptErrorCodes = []errorCode{
	{target: services.ErrInvalidDate, code: "invalid_date"},
	{target: services.ErrFutureDate, code: "future_date"},
	{target: services.ErrInvalidFlowIntensity, code: "invalid_flow"},
	{target: services.ErrNotesTooLong, code: "notes_too_long"},
	{target: services.ErrMoodRatingOutOfRange, code: "invalid_mood"},
	{target: services.ErrEnergyLevelOutOfRange, code: "invalid_energy"},
	{target: services.ErrInvalidSymptomTag, code: "invalid_symptom"},
	{target: services.ErrCycleLengthOutOfRange, code: "cycle_length_out_of_range"},
	{target: services.ErrEmptyFeeling, code: "empty_feeling"},
	{target: errInvalidChoice, code: "invalid_choice"},
}

// prompter asks one question at a time over a line-oriented reader.
type prompter struct {
	scanner  *bufio.Scanner
	out      io.Writer
	styles   styles
	i18n     *i18n.Manager
	language string
}

func newPrompter(in io.Reader, out io.Writer, manager *i18n.Manager, language string) *prompter {
	return &prompter{
		scanner:  bufio.NewScanner(in),
		out:      out,
		styles:   newStyles(out),
		i18n:     manager,
		language: language,
	}
}

// line returns io.EOF once input is exhausted.
func (p *prompter) line(question string) (string, error) {
	fmt.Fprint(p.out, question+" ")
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// ask repeats question until parse accepts the answer.
func ask[T any](p *prompter, question string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.line(question)
		if err != nil {
			var zero T
			return zero, err
		}
		value, err := parse(answer)
		if err == nil {
			return value, nil
		}
		p.problem(err)
	}
}

func (p *prompter) problem(err error) {
	fmt.Fprintln(p.out, p.styles.errorText.Render("  "+p.describe(err)))
}

func (p *prompter) describe(err error) string {
	if p.i18n != nil {
		for _, mapping := range promptErrorCodes {
			if errors.Is(err, mapping.target) {
				return p.i18n.Translate(p.language, "error."+mapping.code)
			}
		}
	}
	return err.Error()
}

func (p *prompter) message(key string, args ...any) string {
	if p.i18n == nil {
		return key
	}
	if len(args) == 0 {
		return p.i18n.Translate(p.language, key)
	}
	return p.i18n.Translatef(p.language, key, args...)
}

// dayParser accepts YYYY-MM-DD or blank for today; days after today are
// rejected.
func dayParser(now time.Time, location *time.Location) func(string) (time.Time, error) {
	today := services.DateAtLocation(now, location)
	return func(raw string) (time.Time, error) {
		if raw == "" {
			return today, nil
		}
		day, err := services.ParseDayInput(raw, location)
		if err != nil {
			return time.Time{}, err
		}
		if services.DateAtLocation(day, location).After(today) {
			return time.Time{}, services.ErrFutureDate
		}
		return day, nil
	}
}

func parseFlow(raw string) (string, error) {
	flow := strings.ToLower(raw)
	switch flow {
	case "l":
		flow = models.FlowLight
	case "m":
		flow = models.FlowModerate
	case "h":
		flow = models.FlowHeavy
	}
	if !models.IsValidFlowIntensity(flow) {
		return "", services.ErrInvalidFlowIntensity
	}
	return flow, nil
}

func parseYesNo(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "y", "yes", "д", "да":
		return true, nil
	case "n", "no", "н", "нет", "":
		return false, nil
	default:
		return false, errInvalidChoice
	}
}

func parseNotes(raw string) (string, error) {
	if utf8.RuneCountInString(raw) > services.MaxNotesLength {
		return "", services.ErrNotesTooLong
	}
	return raw, nil
}

func intRangeParser(minimum int, maximum int, outOfRange error) func(string) (int, error) {
	return func(raw string) (int, error) {
		value, err := strconv.Atoi(raw)
		if err != nil || value < minimum || value > maximum {
			return 0, outOfRange
		}
		return value, nil
	}
}

// parseSymptomSelection accepts catalog numbers, catalog tags or free text,
// comma separated.
func parseSymptomSelection(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	catalog := models.DefaultBuiltinSymptoms()
	tags := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		if index, err := strconv.Atoi(value); err == nil {
			if index < 1 || index > len(catalog) {
				return nil, services.ErrInvalidSymptomTag
			}
			tags = append(tags, catalog[index-1].Tag)
			continue
		}
		tags = append(tags, strings.ReplaceAll(strings.ToLower(value), " ", "-"))
	}
	return tags, nil
}

func parseFeeling(raw string) (string, error) {
	if raw == "" {
		return "", services.ErrEmptyFeeling
	}
	return raw, nil
}
