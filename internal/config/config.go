package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tempcast/db"
	"tempcast/pkg/llm"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

type AppConfig struct {
	DataSource  db.Source
	SensorTable string

	Provider string
	APIKey   string
	ModelID  string
	BaseURL  string

	// MaxTokens is never below llm.MinMaxTokens; a week of readings asks for
	// 144 forecast lines plus a summary.
	MaxTokens int

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxRetries     int
}

// Load reads configuration from the environment, after loading a .env file if present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{
		DataSource: db.Source{
			URL:      getenv("DATA_SOURCE_URL"),
			User:     getenv("DATA_SOURCE_USER"),
			Password: getenv("DATA_SOURCE_PASSWORD"),
		},
		SensorTable: getenvDefault(getenv, "SENSOR_TABLE", "dht11"),
		Provider:    strings.ToLower(getenvDefault(getenv, "INFERENCE_PROVIDER", ProviderAnthropic)),
		APIKey:      getenv("INFERENCE_API_KEY"),
		ModelID:     getenv("MODEL_ID"),
		BaseURL:     getenv("INFERENCE_BASE_URL"),
	}

	if cfg.DataSource.URL == "" {
		return nil, fmt.Errorf("DATA_SOURCE_URL is required")
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		if cfg.ModelID == "" {
			cfg.ModelID = llm.DefaultAnthropicModel
		}
	case ProviderOpenAI:
		if cfg.ModelID == "" {
			cfg.ModelID = llm.DefaultOpenAIModel
		}
	default:
		return nil, fmt.Errorf("unknown INFERENCE_PROVIDER %q", cfg.Provider)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("INFERENCE_API_KEY is required")
	}

	var err error
	if cfg.MaxTokens, err = getenvInt(getenv, "INFERENCE_MAX_TOKENS", llm.DefaultMaxTokens); err != nil {
		return nil, err
	}
	if cfg.MaxTokens < llm.MinMaxTokens {
		slog.Warn("INFERENCE_MAX_TOKENS below minimum, raising", "configured", cfg.MaxTokens, "minimum", llm.MinMaxTokens)
		cfg.MaxTokens = llm.MinMaxTokens
	}

	if cfg.MaxRetries, err = getenvInt(getenv, "INFERENCE_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid INFERENCE_MAX_RETRIES: must not be negative")
	}

	if cfg.ConnectTimeout, err = getenvDuration(getenv, "INFERENCE_CONNECT_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = getenvDuration(getenv, "INFERENCE_READ_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Inference returns the client settings shared by every provider.
func (c *AppConfig) Inference() llm.ClientConfig {
	return llm.ClientConfig{
		APIKey:         c.APIKey,
		Model:          c.ModelID,
		BaseURL:        c.BaseURL,
		MaxTokens:      c.MaxTokens,
		ConnectTimeout: c.ConnectTimeout,
		ReadTimeout:    c.ReadTimeout,
		MaxRetries:     c.MaxRetries,
	}
}

func getenvDefault(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
