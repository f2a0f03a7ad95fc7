package storygen

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const systemPromptTemplate = `You are the narrator of an interactive spoken adventure. Continue the story based on what the player says.

Respond with exactly one short story paragraph followed by two choice lines. The choice lines must be the last two lines of your response and must start with %q and %q, for example:

The corridor narrows and torchlight flickers on wet stone.
%s Press on into the dark
%s Turn back towards the entrance

Keep the paragraph under 120 words, write in second person, and never address the player out of character. The two choices must be distinct and concrete.`

func systemPrompt(labels [2]string) string {
	return fmt.Sprintf(systemPromptTemplate, labels[0], labels[1], labels[0], labels[1])
}

func buildMessages(labels [2]string, history string, choices [2]string, utterance string) []Message {
	var prompt strings.Builder
	if history != "" {
		fmt.Fprintf(&prompt, "The story so far:\n%s\n\n", history)
	}
	fmt.Fprintf(&prompt, "The player was offered:\n1. %s\n2. %s\n\n", choices[0], choices[1])
	fmt.Fprintf(&prompt, "The player said: %q\n\nContinue the story.", utterance)

	return []Message{
		{Role: RoleSystem, Content: systemPrompt(labels)},
		{Role: RoleUser, Content: prompt.String()},
	}
}

type tokenCounter func(text string) int

// trimHistory drops the oldest paragraphs until the history fits the token
// budget. The most recent paragraph is always kept.
func trimHistory(history string, budget int, count tokenCounter) string {
	if history == "" || budget <= 0 {
		return history
	}
	if count(history) <= budget {
		return history
	}

	paragraphs := strings.Split(history, "\n\n")
	for len(paragraphs) > 1 {
		paragraphs = paragraphs[1:]
		if count(strings.Join(paragraphs, "\n\n")) <= budget {
			break
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

const defaultTokenEncoding = "cl100k_base"

// newTokenCounter builds a counter for the given model, falling back to a
// bytes-per-token estimate when no tokenizer is available.
func newTokenCounter(model string) tokenCounter {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding(defaultTokenEncoding)
	}
	if err != nil || encoding == nil {
		return approximateTokens
	}

	return func(text string) int {
		return len(encoding.Encode(text, nil, nil))
	}
}

func approximateTokens(text string) int {
	return (len(text) + 3) / 4
}
