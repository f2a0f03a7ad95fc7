package storygen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse marks a model response that could not be parsed into
// a continuation.
var ErrMalformedResponse = errors.New("malformed continuation response")

// DefaultChoiceLabels are the prefixes the model is instructed to put in
// front of its two choice lines.
var DefaultChoiceLabels = [2]string{"CHOICE A:", "CHOICE B:"}

// ParseContinuation splits a raw model response into a story beat and two
// choices. The response must contain at least three non-empty lines, with
// the last two starting with the expected choice labels. Labels are matched
// case-insensitively; everything before the choice lines becomes the story.
func ParseContinuation(raw string, labels [2]string) (*Continuation, error) {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: expected a story line and two choice lines, got %d lines", ErrMalformedResponse, len(lines))
	}

	first, err := stripChoiceLabel(lines[len(lines)-2], labels[0])
	if err != nil {
		return nil, err
	}
	second, err := stripChoiceLabel(lines[len(lines)-1], labels[1])
	if err != nil {
		return nil, err
	}

	if first == "" || second == "" {
		return nil, fmt.Errorf("%w: empty choice text", ErrMalformedResponse)
	}
	if strings.EqualFold(first, second) {
		return nil, fmt.Errorf("%w: choices are identical", ErrMalformedResponse)
	}

	return &Continuation{
		Story:   strings.Join(lines[:len(lines)-2], "\n"),
		Choices: [2]string{first, second},
	}, nil
}

func stripChoiceLabel(line, label string) (string, error) {
	if len(line) < len(label) || !strings.EqualFold(line[:len(label)], label) {
		return "", fmt.Errorf("%w: line %q does not start with %q", ErrMalformedResponse, line, label)
	}
	return strings.TrimSpace(line[len(label):]), nil
}
