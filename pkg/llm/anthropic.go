package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultAnthropicModel = string(anthropic.ModelClaudeHaiku4_5)

	// AnthropicAPIVersion is pinned on every request.
	AnthropicAPIVersion = "2023-06-01"

	messagesPath = "v1/messages"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

func NewAnthropicClient(cfg ClientConfig) *AnthropicClient {
	cfg = cfg.withDefaults()
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHeader("anthropic-version", AnthropicAPIVersion),
		option.WithHTTPClient(newHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout)),
		option.WithRequestTimeout(attemptTimeout(cfg.ConnectTimeout, cfg.ReadTimeout)),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client:    &client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Predict posts the prompt as a single user message. The raw body is kept so
// that every response shape, including malformed ones, maps to a Result.
func (c *AnthropicClient) Predict(ctx context.Context, prompt string) Result {
	req := NewInferenceRequest(c.model, c.maxTokens, prompt)

	slog.Info("sending readings to model", "provider", "anthropic", "model", c.model, "prompt_chars", len(prompt))

	// Messages.New would send content as blocks and reject malformed bodies
	// before DecodeResponse sees them.
	var body []byte
	err := c.client.Post(ctx, messagesPath, req, &body)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return statusFailure(apiErr.StatusCode, apiErr.RawJSON(), DecodeResponse)
		}
		return Failure(KindTransport, err.Error())
	}

	return DecodeResponse(body)
}
