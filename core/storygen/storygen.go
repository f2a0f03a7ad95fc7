// Package storygen turns player utterances into story continuations using a
// chat completion model. Providers implementing [TextCompleter] live in the
// subpackages.
package storygen

import "context"

// Chat roles understood by every completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message sent to the completion model.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest is a provider-independent chat completion request.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// TextCompleter produces a completion for a chat request.
type TextCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Request carries everything needed to continue the story by one beat.
type Request struct {
	// History is the full story told so far.
	History string
	// Choices are the two options that were on offer when the player spoke.
	Choices [2]string
	// Utterance is the player's transcribed speech.
	Utterance string
}

// Continuation is one parsed story beat together with the next two choices.
type Continuation struct {
	Story   string
	Choices [2]string
}

// Opening is a structured opening scene for a new story.
type Opening struct {
	Story        string `json:"story"`
	FirstChoice  string `json:"first_choice"`
	SecondChoice string `json:"second_choice"`
}
