package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultOpenAIModel = string(openai.ChatModelGPT4oMini)

type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func NewOpenAIClient(cfg ClientConfig) *OpenAIClient {
	cfg = cfg.withDefaults()
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(newHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout)),
		option.WithRequestTimeout(attemptTimeout(cfg.ConnectTimeout, cfg.ReadTimeout)),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client:    &client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (c *OpenAIClient) Predict(ctx context.Context, prompt string) Result {
	slog.Info("sending readings to model", "provider", "openai", "model", c.model, "prompt_chars", len(prompt))

	var body []byte
	_, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	}, option.WithResponseBodyInto(&body))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			// openai-go unwraps the "error" object, so RawJSON no longer carries it.
			if apiErr.Message != "" {
				return Failure(KindAPI, apiErr.Message)
			}
			return statusFailure(apiErr.StatusCode, apiErr.RawJSON(), DecodeChatCompletion)
		}
		return Failure(KindTransport, err.Error())
	}

	return DecodeChatCompletion(body)
}
