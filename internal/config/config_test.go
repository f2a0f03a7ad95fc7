package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORY_PROVIDER", "ollama")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434", cfg.OllamaHost)
	assert.Equal(t, "llama3.1", cfg.OllamaModel)
	assert.InDelta(t, 0.8, cfg.Temperature, 0.001)
	assert.Equal(t, 400, cfg.MaxTokens)
	assert.Equal(t, 3000, cfg.HistoryTokenBudget)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "en-US", cfg.CaptureLocale)
	assert.Equal(t, "aura-2-thalia-en", cfg.Voice)
	assert.Equal(t, AudioBackendMiniaudio, cfg.AudioBackend)
	assert.True(t, cfg.NarrateChoices)
	assert.False(t, cfg.GeneratedOpening)
}

func TestLoadOpenAIRequiresAPIKey(t *testing.T) {
	t.Setenv("STORY_PROVIDER", "openai")
	t.Setenv("STORY_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORY_API_KEY")
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("STORY_PROVIDER", "mainframe")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORY_PROVIDER")
}

func TestLoadRejectsUnknownAudioBackend(t *testing.T) {
	t.Setenv("STORY_PROVIDER", "ollama")
	t.Setenv("AUDIO_BACKEND", "gramophone")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUDIO_BACKEND")
}

func TestVoiceToggles(t *testing.T) {
	t.Setenv("STORY_PROVIDER", "ollama")
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("AUDIO_BACKEND", "none")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.VoiceEnabled())
	assert.False(t, cfg.AudioDevicesEnabled())

	t.Setenv("AUDIO_BACKEND", "portaudio")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.AudioDevicesEnabled())
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("STORY_PROVIDER", "openai")
	t.Setenv("STORY_API_KEY", "sk-test")
	t.Setenv("STORY_BASE_URL", "https://openrouter.ai/api/v1")
	t.Setenv("STORY_MODEL", "anthropic/claude-3.5-haiku")
	t.Setenv("REQUEST_TIMEOUT", "90s")
	t.Setenv("NARRATE_CHOICES", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.StoryAPIKey)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.StoryBaseURL)
	assert.Equal(t, "anthropic/claude-3.5-haiku", cfg.StoryModel)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.NarrateChoices)
}
