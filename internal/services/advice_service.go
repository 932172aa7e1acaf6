package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrEmptyFeeling      = errors.New("feeling is required")
	ErrAdviceUnavailable = errors.New("advice provider unavailable")
)

const (
	AdviceSourceAI       = "ai"
	AdviceSourceFallback = "fallback"

	defaultAdviceTimeout = 30 * time.Second
	maxFeelingLength     = 2000
)

// AdviceProvider turns a free-text prompt into generated prose.
type AdviceProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type AdviceMetrics interface {
	RecordAdvice(source string)
}

type noopAdviceMetrics struct{}

func (noopAdviceMetrics) RecordAdvice(string) {}

type Advice struct {
	Source string `json:"source"`
	Text   string `json:"text"`
	HTML   string `json:"html"`
}

type AdviceOptions struct {
	Timeout time.Duration
	Limiter *rate.Limiter
	Metrics AdviceMetrics
	Logger  *zap.Logger
}

type AdviceService struct {
	provider  AdviceProvider
	timeout   time.Duration
	limiter   *rate.Limiter
	metrics   AdviceMetrics
	logger    *zap.Logger
	formatter *AdviceFormatter
}

// NewAdviceService accepts a nil provider; every request then uses the
// local phase-keyed advice.
func NewAdviceService(provider AdviceProvider, options AdviceOptions) *AdviceService {
	service := &AdviceService{
		provider:  provider,
		timeout:   options.Timeout,
		limiter:   options.Limiter,
		metrics:   options.Metrics,
		logger:    options.Logger,
		formatter: NewAdviceFormatter(),
	}
	if service.timeout <= 0 {
		service.timeout = defaultAdviceTimeout
	}
	if service.metrics == nil {
		service.metrics = noopAdviceMetrics{}
	}
	if service.logger == nil {
		service.logger = zap.NewNop()
	}
	return service
}

func (service *AdviceService) HasProvider() bool {
	return service.provider != nil
}

func (service *AdviceService) Advise(ctx context.Context, model *CycleModel, feeling string, now time.Time) (Advice, error) {
	feeling = strings.TrimSpace(feeling)
	if feeling == "" {
		return Advice{}, ErrEmptyFeeling
	}
	if runes := []rune(feeling); len(runes) > maxFeelingLength {
		feeling = string(runes[:maxFeelingLength])
	}

	text, err := service.complete(ctx, feeling)
	if err == nil {
		service.metrics.RecordAdvice(AdviceSourceAI)
		return Advice{
			Source: AdviceSourceAI,
			Text:   text,
			HTML:   service.formatter.FormatHTML(text),
		}, nil
	}

	if !errors.Is(err, ErrAdviceUnavailable) {
		service.logger.Warn("advice provider failed, using fallback", zap.Error(err))
	}
	service.metrics.RecordAdvice(AdviceSourceFallback)
	return service.formatter.Fallback(model, feeling, now), nil
}

func (service *AdviceService) complete(ctx context.Context, feeling string) (string, error) {
	if service.provider == nil {
		return "", ErrAdviceUnavailable
	}
	if service.limiter != nil && !service.limiter.Allow() {
		return "", errors.New("advice rate limit exhausted")
	}

	callCtx, cancel := context.WithTimeout(ctx, service.timeout)
	defer cancel()

	text, err := service.provider.Complete(callCtx, feeling)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("advice provider returned empty text")
	}
	return text, nil
}
