package storygen

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Generator produces story continuations through a [TextCompleter].
type Generator struct {
	completer TextCompleter
	options   GeneratorOptions
	count     tokenCounter
}

func NewGenerator(completer TextCompleter, opts ...GeneratorOption) *Generator {
	options := GeneratorOptions{
		Labels:             DefaultChoiceLabels,
		Temperature:        0.8,
		MaxTokens:          400,
		HistoryTokenBudget: 3000,
		TokenizerModel:     "gpt-4o",
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Generator{
		completer: completer,
		options:   options,
		count:     newTokenCounter(options.TokenizerModel),
	}
}

// GenerateContinuation asks the model to continue the story and parses the
// response. A response that cannot be parsed is returned as an error
// wrapping [ErrMalformedResponse]; no retry is attempted.
func (g *Generator) GenerateContinuation(ctx context.Context, req Request) (*Continuation, error) {
	ctx, span := tracer.Start(ctx, "generate continuation", trace.WithAttributes(
		attribute.Int("history_length", len(req.History)),
		attribute.Int("utterance_length", len(req.Utterance)),
	))
	defer span.End()

	history := trimHistory(req.History, g.options.HistoryTokenBudget, g.count)

	raw, err := g.completer.Complete(ctx, CompletionRequest{
		Messages:    buildMessages(g.options.Labels, history, req.Choices, req.Utterance),
		Temperature: g.options.Temperature,
		MaxTokens:   g.options.MaxTokens,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	continuation, err := ParseContinuation(raw, g.options.Labels)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return continuation, nil
}
