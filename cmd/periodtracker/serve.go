package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/periodtracker/internal/api"
	"github.com/terraincognita07/periodtracker/internal/config"
	"github.com/terraincognita07/periodtracker/internal/db"
	"github.com/terraincognita07/periodtracker/internal/i18n"
	"github.com/terraincognita07/periodtracker/internal/llm"
	"github.com/terraincognita07/periodtracker/internal/metrics"
	"github.com/terraincognita07/periodtracker/internal/services"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON web API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), env.cfg, env.logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if err := cfg.ValidateSecretKey(); err != nil {
		return err
	}
	location := resolveLocation(cfg, log)
	time.Local = location

	database, err := db.OpenSQLite(cfg.Storage.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	i18nManager, err := i18n.NewEmbeddedManager(cfg.Server.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	adviceService, err := newAdviceService(ctx, cfg.Advice, collector, log)
	if err != nil {
		return fmt.Errorf("advice init failed: %w", err)
	}

	handler, err := api.NewHandler(api.Config{
		Database:       database,
		SecretKey:      cfg.Server.SecretKey,
		Location:       location,
		CookieSecure:   cfg.Server.CookieSecure,
		I18n:           i18nManager,
		Advice:         adviceService,
		Metrics:        collector,
		MetricsHandler: metrics.Handler(registry),
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	if cfg.Server.SeedDemoAccount {
		created, err := handler.AuthService().EnsureDemoUser(time.Now())
		if err != nil {
			return fmt.Errorf("seed demo account: %w", err)
		}
		if created {
			log.Info("demo account created", zap.String("username", services.DemoUsername))
		}
	}

	if users, err := db.NewUserRepository(database).CountUsers(); err != nil {
		log.Warn("count users failed", zap.Error(err))
	} else if users == 0 {
		log.Info("no accounts yet; register through POST /api/auth/register")
	}

	app := fiber.New(fiber.Config{
		AppName:               "Period Tracker",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.StatusMetrics)
	app.Use(handler.LanguageMiddleware)
	api.RegisterRoutes(app, handler)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("listening",
		zap.String("addr", "0.0.0.0:"+cfg.Server.Port),
		zap.String("db", cfg.Storage.DBPath),
		zap.String("tz", location.String()),
		zap.Bool("advice_provider", adviceService.HasProvider()),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func resolveLocation(cfg *config.Config, log *zap.Logger) *time.Location {
	location, err := cfg.Location()
	if err != nil {
		log.Warn("falling back to UTC", zap.Error(err))
	}
	return location
}

// newAdviceService never logs credentials; a zero rate disables throttling.
func newAdviceService(ctx context.Context, cfg config.AdviceConfig, adviceMetrics services.AdviceMetrics, log *zap.Logger) (*services.AdviceService, error) {
	provider, err := llm.NewProvider(ctx, llm.Config{
		Provider:      cfg.Provider,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
	})
	if err != nil {
		return nil, err
	}
	if provider == nil {
		log.Info("no advice provider credential configured, serving offline tips")
	}

	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}

	return services.NewAdviceService(provider, services.AdviceOptions{
		Timeout: cfg.Timeout,
		Limiter: limiter,
		Metrics: adviceMetrics,
		Logger:  log,
	}), nil
}
