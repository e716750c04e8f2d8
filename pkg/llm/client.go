package llm

import (
	"context"
	"time"
)

const (
	// DefaultMaxTokens leaves headroom over MinMaxTokens for the trend summary
	// and models that spend more tokens per line.
	DefaultMaxTokens = 4096

	// MinMaxTokens covers ExpectedForecastLines at roughly eight tokens per
	// "HH:MM -> XX.X°C" line plus a short summary. Smaller budgets truncate the forecast.
	MinMaxTokens = 2048
)

// Predictor sends a prediction prompt to a hosted model. Predict never returns
// an error: every outcome is folded into the Result.
type Predictor interface {
	Predict(ctx context.Context, prompt string) Result
}

type ClientConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// MaxRetries enables bounded retry with exponential backoff on transient
	// failures. Zero means a single attempt.
	MaxRetries int
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// InferenceRequest is the body posted to the messages endpoint.
type InferenceRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

func NewInferenceRequest(model string, maxTokens int, prompt string) InferenceRequest {
	if maxTokens < MinMaxTokens {
		maxTokens = MinMaxTokens
	}
	return InferenceRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
	}
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	} else if c.MaxTokens < MinMaxTokens {
		c.MaxTokens = MinMaxTokens
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}
