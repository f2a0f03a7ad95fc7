// Package openai adapts OpenAI-compatible chat APIs, including OpenRouter,
// to the storygen completer interface.
package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jinzhu/copier"
	gopenai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
)

const defaultModel = "gpt-4o-mini"

type Client struct {
	api   *gopenai.Client
	model string
}

type clientOptions struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type ClientOption func(*clientOptions)

// WithBaseURL points the client at an OpenAI-compatible endpoint such as
// OpenRouter.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

func WithModel(model string) ClientOption {
	return func(o *clientOptions) {
		if model != "" {
			o.model = model
		}
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	options := clientOptions{
		model: defaultModel,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(&options)
	}

	config := gopenai.DefaultConfig(apiKey)
	if options.baseURL != "" {
		config.BaseURL = options.baseURL
	}
	config.HTTPClient = options.httpClient

	return &Client{
		api:   gopenai.NewClientWithConfig(config),
		model: options.model,
	}
}

func (c *Client) Complete(ctx context.Context, req storygen.CompletionRequest) (string, error) {
	messages := []gopenai.ChatCompletionMessage{}
	if err := copier.Copy(&messages, req.Messages); err != nil {
		return "", fmt.Errorf("failed to map messages: %w", err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
