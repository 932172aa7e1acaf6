package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/terraincognita07/periodtracker/internal/db"
	"github.com/terraincognita07/periodtracker/internal/i18n"
	"github.com/terraincognita07/periodtracker/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

// Metrics is what the web layer reports; metrics.Collector satisfies it.
type Metrics interface {
	services.SessionMetrics
	services.AdviceMetrics
	RecordLoginFailure()
	RecordHTTPStatus(statusCode int)
}

type noopMetrics struct{}

func (noopMetrics) RecordPeriodLogged()  {}
func (noopMetrics) RecordSymptomLogged() {}
func (noopMetrics) RecordAdvice(string)  {}
func (noopMetrics) RecordLoginFailure()  {}
func (noopMetrics) RecordHTTPStatus(int) {}

type Config struct {
	Database       *gorm.DB
	SecretKey      string
	Location       *time.Location
	CookieSecure   bool
	I18n           *i18n.Manager
	Advice         *services.AdviceService
	Metrics        Metrics
	MetricsHandler http.Handler
	Logger         *zap.Logger
	Now            func() time.Time
}

type Handler struct {
	repositories   *db.Repositories
	authService    *services.AuthService
	adviceService  *services.AdviceService
	i18n           *i18n.Manager
	metrics        Metrics
	metricsHandler http.Handler
	logger         *zap.Logger
	secretKey      []byte
	location       *time.Location
	cookieSecure   bool
	loginLimiter   *attemptLimiter
	userLocks      *userLocks
	now            func() time.Time
}

func NewHandler(cfg Config) (*Handler, error) {
	if cfg.Database == nil {
		return nil, errors.New("database is required")
	}
	if cfg.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if len(cfg.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}

	handler := &Handler{
		repositories:   db.NewRepositories(cfg.Database),
		adviceService:  cfg.Advice,
		i18n:           cfg.I18n,
		metrics:        cfg.Metrics,
		metricsHandler: cfg.MetricsHandler,
		logger:         cfg.Logger,
		secretKey:      []byte(cfg.SecretKey),
		location:       cfg.Location,
		cookieSecure:   cfg.CookieSecure,
		loginLimiter:   newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		userLocks:      newUserLocks(),
		now:            cfg.Now,
	}
	handler.authService = services.NewAuthService(handler.repositories.Users)

	if handler.location == nil {
		handler.location = time.UTC
	}
	if handler.metrics == nil {
		handler.metrics = noopMetrics{}
	}
	if handler.logger == nil {
		handler.logger = zap.NewNop()
	}
	if handler.now == nil {
		handler.now = time.Now
	}
	if handler.adviceService == nil {
		handler.adviceService = services.NewAdviceService(nil, services.AdviceOptions{
			Metrics: handler.metrics,
			Logger:  handler.logger,
		})
	}
	return handler, nil
}

// AuthService exposes account operations for startup seeding.
func (handler *Handler) AuthService() *services.AuthService {
	return handler.authService
}

func (handler *Handler) openSession(userID uint) (*services.Session, error) {
	return services.OpenSession(handler.repositories.CycleStates.ForUser(userID), handler.metrics)
}
