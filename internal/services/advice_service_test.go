package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
	"golang.org/x/time/rate"
)

type stubAdviceProvider struct {
	text    string
	err     error
	calls   int
	prompts []string
}

func (provider *stubAdviceProvider) Complete(ctx context.Context, prompt string) (string, error) {
	provider.calls++
	provider.prompts = append(provider.prompts, prompt)
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("expected deadline on advice context")
	}
	return provider.text, provider.err
}

type countingAdviceMetrics struct {
	sources []string
}

func (metrics *countingAdviceMetrics) RecordAdvice(source string) {
	metrics.sources = append(metrics.sources, source)
}

func adviceTestModel() *CycleModel {
	model := NewCycleModel(models.NewCycleState())
	model.LogPeriod(makePeriod("2026-03-01"))
	return model
}

func TestAdviceServiceRejectsBlankFeeling(t *testing.T) {
	t.Parallel()

	service := NewAdviceService(nil, AdviceOptions{})
	if _, err := service.Advise(context.Background(), adviceTestModel(), "   ", time.Now()); !errors.Is(err, ErrEmptyFeeling) {
		t.Fatalf("expected ErrEmptyFeeling, got %v", err)
	}
}

func TestAdviceServiceUsesProviderText(t *testing.T) {
	t.Parallel()

	provider := &stubAdviceProvider{text: "Rest: take it slow today.\n\nDrink water and sleep well."}
	metrics := &countingAdviceMetrics{}
	service := NewAdviceService(provider, AdviceOptions{Timeout: time.Second, Metrics: metrics})

	advice, err := service.Advise(context.Background(), adviceTestModel(), " tired ", mustParseDay("2026-03-10"))
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if advice.Source != AdviceSourceAI {
		t.Fatalf("expected ai source, got %q", advice.Source)
	}
	if provider.prompts[0] != "tired" {
		t.Fatalf("expected trimmed prompt, got %q", provider.prompts[0])
	}
	if !strings.Contains(advice.HTML, "<h4>Rest</h4>") {
		t.Fatalf("expected heading paragraph, got %s", advice.HTML)
	}
	if len(metrics.sources) != 1 || metrics.sources[0] != AdviceSourceAI {
		t.Fatalf("unexpected metrics %v", metrics.sources)
	}
}

func TestAdviceServiceFallsBackOnProviderError(t *testing.T) {
	t.Parallel()

	provider := &stubAdviceProvider{err: errors.New("status 500")}
	metrics := &countingAdviceMetrics{}
	service := NewAdviceService(provider, AdviceOptions{Metrics: metrics})

	advice, err := service.Advise(context.Background(), adviceTestModel(), "crampy", mustParseDay("2026-03-03"))
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if advice.Source != AdviceSourceFallback {
		t.Fatalf("expected fallback source, got %q", advice.Source)
	}
	if !strings.Contains(advice.HTML, "Menstrual phase") || !strings.Contains(advice.HTML, "Day 2") {
		t.Fatalf("expected phase-keyed fallback, got %s", advice.HTML)
	}
	if metrics.sources[0] != AdviceSourceFallback {
		t.Fatalf("unexpected metrics %v", metrics.sources)
	}
}

func TestAdviceServiceFallsBackOnEmptyText(t *testing.T) {
	t.Parallel()

	service := NewAdviceService(&stubAdviceProvider{text: "  "}, AdviceOptions{})
	advice, err := service.Advise(context.Background(), adviceTestModel(), "ok", mustParseDay("2026-03-03"))
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if advice.Source != AdviceSourceFallback {
		t.Fatalf("expected fallback, got %q", advice.Source)
	}
}

func TestAdviceServiceLimiterExhaustedSkipsProvider(t *testing.T) {
	t.Parallel()

	provider := &stubAdviceProvider{text: "fine"}
	service := NewAdviceService(provider, AdviceOptions{Limiter: rate.NewLimiter(rate.Every(time.Hour), 1)})

	first, _ := service.Advise(context.Background(), adviceTestModel(), "ok", mustParseDay("2026-03-03"))
	second, _ := service.Advise(context.Background(), adviceTestModel(), "ok", mustParseDay("2026-03-03"))
	if first.Source != AdviceSourceAI || second.Source != AdviceSourceFallback {
		t.Fatalf("expected ai then fallback, got %q then %q", first.Source, second.Source)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
}

func TestFallbackWithoutPeriodsAsksToTrack(t *testing.T) {
	t.Parallel()

	advice := NewAdviceFormatter().Fallback(NewCycleModel(models.NewCycleState()), "<b>meh</b>", time.Now())
	if !strings.Contains(advice.HTML, "Start Tracking") {
		t.Fatalf("expected tracking prompt, got %s", advice.HTML)
	}
	if strings.Contains(advice.HTML, "<b>") {
		t.Fatalf("expected feeling to be escaped, got %s", advice.HTML)
	}
}

func TestAdviceFormatterEscapesProviderMarkup(t *testing.T) {
	t.Parallel()

	formatter := NewAdviceFormatter()
	got := formatter.FormatHTML("<script>alert(1)</script> be kind to yourself")
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected script to be neutralized, got %s", got)
	}
	if formatter.FormatHTML("\n\n  \n") != emptyAdviceHTML {
		t.Fatal("expected empty-state markup for blank text")
	}
}

func TestAdviceFormatterHeadingCountsCharacters(t *testing.T) {
	t.Parallel()

	formatter := NewAdviceFormatter()
	tests := []struct {
		name        string
		text        string
		wantHeading bool
	}{
		{
			name:        "cyrillic under limit",
			text:        "Отдых: " + strings.Repeat("сон ", 20),
			wantHeading: true,
		},
		{
			name:        "emoji under limit",
			text:        "Tip 💧: " + strings.Repeat("💧", 60),
			wantHeading: true,
		},
		{
			name:        "surrounding spaces count",
			text:        strings.Repeat(" ", 10) + "Sleep: " + strings.Repeat("z", 85),
			wantHeading: false,
		},
		{
			name:        "colon in body kept",
			text:        "Timing: rest at 9:30",
			wantHeading: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := formatter.FormatHTML(testCase.text)
			if strings.Contains(got, "<h4>") != testCase.wantHeading {
				t.Fatalf("heading=%v expected for %q, got %s", testCase.wantHeading, testCase.text, got)
			}
		})
	}

	if got := formatter.FormatHTML("Timing: rest at 9:30"); !strings.Contains(got, "<p>rest at 9:30</p>") {
		t.Fatalf("expected remainder after first colon, got %s", got)
	}
}
