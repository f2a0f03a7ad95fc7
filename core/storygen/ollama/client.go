// Package ollama adapts a local Ollama server to the storygen completer
// interface.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/ollama/ollama/api"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
)

const defaultModel = "llama3.1"

type Client struct {
	api   *api.Client
	model string
}

func NewClient(host string, model string) (*Client, error) {
	hostURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host: %w", err)
	}
	if model == "" {
		model = defaultModel
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &Client{
		api:   api.NewClient(hostURL, httpClient),
		model: model,
	}, nil
}

func (c *Client) Complete(ctx context.Context, req storygen.CompletionRequest) (string, error) {
	messages := []api.Message{}
	if err := copier.Copy(&messages, req.Messages); err != nil {
		return "", fmt.Errorf("failed to map messages: %w", err)
	}

	var content strings.Builder
	err := c.api.Chat(ctx, &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   new(bool),
		Options: map[string]any{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}

	return content.String(), nil
}
