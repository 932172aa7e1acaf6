package services

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	headingParagraphMaxLength = 100
	emptyAdviceHTML           = `<p class="empty-state">No insights available</p>`
)

var selfCareTips = []string{
	"Stay hydrated and maintain a balanced diet",
	"Get adequate sleep (7-9 hours recommended)",
	"Engage in gentle exercise like yoga or walking",
	"Practice stress-reduction techniques like meditation",
	"Track your symptoms to identify patterns",
}

// AdviceFormatter renders advice as HTML limited to a small allow-list.
type AdviceFormatter struct {
	policy *bluemonday.Policy
}

func NewAdviceFormatter() *AdviceFormatter {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("div", "h4", "p", "ul", "li", "strong", "em", "br")
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("div", "p")
	return &AdviceFormatter{policy: policy}
}

func (formatter *AdviceFormatter) Sanitize(raw string) string {
	return formatter.policy.Sanitize(raw)
}

// FormatHTML splits generated text on blank lines; a paragraph under 100
// characters with a colon becomes a heading followed by its remainder.
func (formatter *AdviceFormatter) FormatHTML(text string) string {
	var builder strings.Builder
	for _, raw := range strings.Split(normalizeNewlines(text), "\n\n") {
		paragraph := strings.TrimSpace(raw)
		if paragraph == "" {
			continue
		}
		if strings.Contains(paragraph, ":") && utf8.RuneCountInString(raw) < headingParagraphMaxLength {
			heading, body, _ := strings.Cut(paragraph, ":")
			fmt.Fprintf(&builder, `<div class="prediction-item"><h4>%s</h4><p>%s</p></div>`,
				html.EscapeString(strings.TrimSpace(heading)),
				html.EscapeString(strings.TrimSpace(body)))
			continue
		}
		fmt.Fprintf(&builder, `<div class="prediction-item"><p>%s</p></div>`, html.EscapeString(paragraph))
	}

	if builder.Len() == 0 {
		return emptyAdviceHTML
	}
	return formatter.Sanitize(builder.String())
}

func (formatter *AdviceFormatter) Fallback(model *CycleModel, feeling string, now time.Time) Advice {
	var text strings.Builder
	var markup strings.Builder
	quoted := html.EscapeString(feeling)

	markup.WriteString(`<div class="prediction-item">`)
	if day, ok := model.CurrentCycleDay(now); ok {
		phase := CyclePhase(day)
		fmt.Fprintf(&text, "Your Current Cycle Phase: you're in the %s phase (Day %d of your cycle).\n\n", phase, day)
		fmt.Fprintf(&text, "How You're Feeling: you mentioned %q. This feeling is common during the %s phase.\n\n", feeling, phase)
		text.WriteString("Self-Care Tips:\n- " + strings.Join(selfCareTips, "\n- "))

		fmt.Fprintf(&markup, `<h4>Your Current Cycle Phase</h4><p>You're currently in the <strong>%s phase</strong> (Day %d of your cycle). This phase typically brings specific physical and emotional changes.</p>`, phase, day)
		fmt.Fprintf(&markup, `<h4>How You're Feeling</h4><p>You mentioned: "%s"</p><p>This feeling is common during the %s phase. Your hormonal changes during this time can significantly affect your mood and energy levels.</p>`, quoted, phase)
		markup.WriteString(`<h4>Self-Care Tips</h4><ul>`)
		for _, tip := range selfCareTips {
			fmt.Fprintf(&markup, "<li>%s</li>", html.EscapeString(tip))
		}
		markup.WriteString(`</ul>`)
	} else {
		fmt.Fprintf(&text, "Start Tracking to Get Better Insights: you mentioned %q. Log your periods and symptoms to get cycle-specific advice.", feeling)
		fmt.Fprintf(&markup, `<h4>Start Tracking to Get Better Insights</h4><p>You mentioned: "%s"</p><p>To provide more personalized insights, please start logging your period and symptoms. This will help identify patterns and provide cycle-specific advice.</p>`, quoted)
	}
	markup.WriteString(`</div>`)

	return Advice{
		Source: AdviceSourceFallback,
		Text:   text.String(),
		HTML:   formatter.Sanitize(markup.String()),
	}
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
