package game

import (
	"context"
	"errors"

	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
)

// storyGeneration wraps the configured ContinuationGenerator.
type storyGeneration struct {
	client ContinuationGenerator
}

func newStoryGeneration() *storyGeneration {
	return &storyGeneration{}
}

func (g *storyGeneration) set(client ContinuationGenerator) {
	if g == nil {
		return
	}

	g.client = client
}

func (g *storyGeneration) isConfigured() bool {
	return g != nil && g.client != nil
}

func (g *storyGeneration) generate(ctx context.Context, req storygen.Request) (*storygen.Continuation, error) {
	if !g.isConfigured() {
		return nil, &GenerationError{Err: errors.New("story generator is not configured")}
	}

	continuation, err := g.client.GenerateContinuation(ctx, req)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	return continuation, nil
}

func (g *storyGeneration) Close(ctx context.Context) error {
	if g == nil || g.client == nil {
		return nil
	}

	switch client := g.client.(type) {
	case interface{ Close(ctx context.Context) error }:
		return client.Close(ctx)
	case interface{ Close() error }:
		return client.Close()
	case interface{ Close(ctx context.Context) }:
		client.Close(ctx)
	case interface{ Close() }:
		client.Close()
	}

	return nil
}
