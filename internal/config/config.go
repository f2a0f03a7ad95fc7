// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

const (
	AudioBackendMiniaudio = "miniaudio"
	AudioBackendPortaudio = "portaudio"
	AudioBackendNone      = "none"
)

// Config holds every runtime setting. Voice features degrade gracefully:
// without a Deepgram key the game runs text-only, and AUDIO_BACKEND=none
// disables the sound devices while keeping the rest of the loop intact.
type Config struct {
	// Deepgram credentials for speech recognition and synthesis. Optional;
	// empty disables voice capture and narration audio.
	DeepgramAPIKey string `envconfig:"DEEPGRAM_API_KEY"`

	// Story generation provider: openai (any OpenAI-compatible endpoint,
	// including OpenRouter) or ollama.
	StoryProvider string `envconfig:"STORY_PROVIDER" default:"openai"`
	// StoryAPIKey authenticates against the openai provider. Required when
	// STORY_PROVIDER=openai.
	StoryAPIKey string `envconfig:"STORY_API_KEY"`
	// StoryBaseURL overrides the provider endpoint, e.g.
	// https://openrouter.ai/api/v1. Empty uses the provider default.
	StoryBaseURL string `envconfig:"STORY_BASE_URL"`
	StoryModel   string `envconfig:"STORY_MODEL"`

	OllamaHost  string `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
	OllamaModel string `envconfig:"OLLAMA_MODEL" default:"llama3.1"`

	Temperature        float32       `envconfig:"STORY_TEMPERATURE" default:"0.8"`
	MaxTokens          int           `envconfig:"STORY_MAX_TOKENS" default:"400"`
	HistoryTokenBudget int           `envconfig:"HISTORY_TOKEN_BUDGET" default:"3000"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"45s"`

	CaptureLocale string `envconfig:"CAPTURE_LOCALE" default:"en-US"`
	Voice         string `envconfig:"NARRATION_VOICE" default:"aura-2-thalia-en"`
	AudioBackend  string `envconfig:"AUDIO_BACKEND" default:"miniaudio"`

	// GeneratedOpening asks the story provider for a fresh opening scene at
	// startup instead of the built-in one.
	GeneratedOpening bool   `envconfig:"GENERATED_OPENING" default:"false"`
	OpeningTheme     string `envconfig:"OPENING_THEME"`

	NarrateChoices bool `envconfig:"NARRATE_CHOICES" default:"true"`

	// LogFile receives application logs. Empty discards them; the terminal
	// stays reserved for the game itself.
	LogFile string `envconfig:"LOG_FILE"`
	Debug   bool   `envconfig:"DEBUG" default:"false"`

	// OTelEndpoint is an OTLP/HTTP collector URL for turn traces. Empty
	// leaves tracing disabled.
	OTelEndpoint string `envconfig:"OTEL_ENDPOINT"`
}

// Load reads the optional .env file and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch cfg.StoryProvider {
	case ProviderOpenAI:
		if cfg.StoryAPIKey == "" {
			return nil, fmt.Errorf("STORY_API_KEY is required when STORY_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderOllama:
	default:
		return nil, fmt.Errorf("unknown STORY_PROVIDER %q (expected %s or %s)", cfg.StoryProvider, ProviderOpenAI, ProviderOllama)
	}

	switch cfg.AudioBackend {
	case AudioBackendMiniaudio, AudioBackendPortaudio, AudioBackendNone:
	default:
		return nil, fmt.Errorf("unknown AUDIO_BACKEND %q (expected %s, %s or %s)",
			cfg.AudioBackend, AudioBackendMiniaudio, AudioBackendPortaudio, AudioBackendNone)
	}

	return &cfg, nil
}

// VoiceEnabled reports whether speech recognition and synthesis can be
// wired at all.
func (c *Config) VoiceEnabled() bool {
	return c.DeepgramAPIKey != ""
}

// AudioDevicesEnabled reports whether microphone and speaker devices should
// be opened.
func (c *Config) AudioDevicesEnabled() bool {
	return c.VoiceEnabled() && c.AudioBackend != AudioBackendNone
}
