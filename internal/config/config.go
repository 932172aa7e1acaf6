package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an example placeholder")
	ErrSecretKeyTooShort    = errors.New("SECRET_KEY must be at least 32 characters")
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

// Config aggregates runtime configuration for every command.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Advice  AdviceConfig  `yaml:"advice"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	SecretKey       string `yaml:"secretKey"`
	Timezone        string `yaml:"timezone"`
	DefaultLanguage string `yaml:"defaultLanguage"`
	CookieSecure    bool   `yaml:"cookieSecure"`
	SeedDemoAccount bool   `yaml:"seedDemoAccount"`
}

type StorageConfig struct {
	DBPath   string `yaml:"dbPath"`
	DataFile string `yaml:"dataFile"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AdviceConfig holds provider credentials. They are never logged.
type AdviceConfig struct {
	Provider      string        `yaml:"provider"`
	OpenAIAPIKey  string        `yaml:"openaiApiKey"`
	OpenAIBaseURL string        `yaml:"openaiBaseUrl"`
	OpenAIModel   string        `yaml:"openaiModel"`
	GeminiAPIKey  string        `yaml:"geminiApiKey"`
	GeminiModel   string        `yaml:"geminiModel"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerMinute int           `yaml:"ratePerMinute"`
}

// Load reads defaults, then the optional YAML file at CONFIG_PATH, then
// environment overrides.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Timezone:        "UTC",
			DefaultLanguage: "en",
		},
		Storage: StorageConfig{
			DBPath:   filepath.Join("data", "periodtracker.db"),
			DataFile: "period_tracker_data.json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Advice: AdviceConfig{
			Provider:      "openai",
			Timeout:       30 * time.Second,
			RatePerMinute: 10,
		},
	}
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = strings.TrimSpace(v)
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.Server.SecretKey = v
	}
	if v := os.Getenv("TZ"); v != "" {
		cfg.Server.Timezone = v
	}
	if v := os.Getenv("DEFAULT_LANGUAGE"); v != "" {
		cfg.Server.DefaultLanguage = v
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.Server.CookieSecure = parseBool(v)
	}
	if v := os.Getenv("SEED_DEMO_ACCOUNT"); v != "" {
		cfg.Server.SeedDemoAccount = parseBool(v)
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Storage.DataFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("ADVICE_PROVIDER"); v != "" {
		cfg.Advice.Provider = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Advice.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Advice.OpenAIBaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Advice.OpenAIModel = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Advice.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Advice.GeminiModel = v
	}
	if v := os.Getenv("ADVICE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Advice.Timeout = parsed
		}
	}
	if v := os.Getenv("ADVICE_RATE_PER_MINUTE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Advice.RatePerMinute = parsed
		}
	}
}

func parseBool(raw string) bool {
	value := strings.TrimSpace(raw)
	return value == "1" || strings.EqualFold(value, "true") || strings.EqualFold(value, "yes")
}

// Validate checks settings shared by all commands. The secret key is
// checked separately by ValidateSecretKey because only serve needs it.
func (cfg *Config) Validate() error {
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", cfg.Server.Port)
	}
	if strings.TrimSpace(cfg.Storage.DBPath) == "" {
		return errors.New("DB_PATH cannot be empty")
	}
	if strings.TrimSpace(cfg.Storage.DataFile) == "" {
		return errors.New("DATA_FILE cannot be empty")
	}
	if cfg.Advice.Timeout <= 0 {
		return errors.New("ADVICE_TIMEOUT must be positive")
	}
	if cfg.Advice.RatePerMinute < 0 {
		return errors.New("ADVICE_RATE_PER_MINUTE cannot be negative")
	}
	return nil
}

func (cfg *Config) ValidateSecretKey() error {
	secret := strings.TrimSpace(cfg.Server.SecretKey)
	if secret == "" {
		return ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	return nil
}

// Location falls back to UTC for an unknown zone name.
func (cfg *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q: %w", cfg.Server.Timezone, err)
	}
	return location, nil
}
