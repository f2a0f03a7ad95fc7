package storygen

type GeneratorOptions struct {
	// Labels are the prefixes expected on the two choice lines.
	Labels      [2]string
	Temperature float32
	MaxTokens   int
	// HistoryTokenBudget bounds how much story history is sent with each
	// request.
	HistoryTokenBudget int
	// TokenizerModel selects the tokenizer used to measure history.
	TokenizerModel string
}

type GeneratorOption func(*GeneratorOptions)

// WithChoiceLabels overrides the prefixes the model is asked to put on its
// choice lines. Empty labels are ignored.
func WithChoiceLabels(first, second string) GeneratorOption {
	return func(o *GeneratorOptions) {
		if first != "" && second != "" {
			o.Labels = [2]string{first, second}
		}
	}
}

func WithTemperature(temperature float32) GeneratorOption {
	return func(o *GeneratorOptions) {
		if temperature > 0 {
			o.Temperature = temperature
		}
	}
}

func WithMaxTokens(maxTokens int) GeneratorOption {
	return func(o *GeneratorOptions) {
		if maxTokens > 0 {
			o.MaxTokens = maxTokens
		}
	}
}

func WithHistoryTokenBudget(budget int) GeneratorOption {
	return func(o *GeneratorOptions) {
		if budget > 0 {
			o.HistoryTokenBudget = budget
		}
	}
}

func WithTokenizerModel(model string) GeneratorOption {
	return func(o *GeneratorOptions) {
		if model != "" {
			o.TokenizerModel = model
		}
	}
}
