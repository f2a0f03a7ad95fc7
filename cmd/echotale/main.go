package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	game "github.com/codemaster-omvardhan/Echo-Tale/core"
	"github.com/codemaster-omvardhan/Echo-Tale/core/audio/miniaudio"
	"github.com/codemaster-omvardhan/Echo-Tale/core/audio/portaudio"
	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
	sttdeepgram "github.com/codemaster-omvardhan/Echo-Tale/core/speechtotext/deepgram"
	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen/ollama"
	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen/openai"
	ttsdeepgram "github.com/codemaster-omvardhan/Echo-Tale/core/texttospeech/deepgram"
	"github.com/codemaster-omvardhan/Echo-Tale/internal/config"
	"github.com/codemaster-omvardhan/Echo-Tale/internal/telemetry"
	"github.com/codemaster-omvardhan/Echo-Tale/internal/tui"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "echotale"

// portaudioBufferSize is the frames-per-buffer for the portaudio backend,
// 32ms of audio at the default capture rate.
const portaudioBufferSize = 512

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	closeLogs, err := initLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer closeLogs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		zlog.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			zlog.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	opts, err := coordinatorOptions(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up the game: %v", err)
	}

	coordinator := game.NewCoordinator(opts...)
	program := tea.NewProgram(tui.NewModel(coordinator), tea.WithAltScreen())

	runOpts := []game.RunOption{
		game.WithEventCallback(func(event events.Event) {
			program.Send(tui.EventMsg{Event: event})
		}),
		game.WithStateChangedCallback(func(from, to game.State) {
			zlog.Debug().Str("from", string(from)).Str("to", string(to)).Msg("state changed")
		}),
		game.WithTurnFallbackCallback(func(err error) {
			zlog.Warn().Err(err).Msg("story generation failed, continuing with fallback beat")
		}),
		game.WithCaptureFailedCallback(func(err error) {
			zlog.Warn().Err(err).Msg("speech capture failed")
		}),
	}
	if cfg.NarrateChoices {
		runOpts = append(runOpts, game.WithChoiceNarration())
	}
	coordinator.Run(ctx, runOpts...)

	// A signal closes the coordinator through its context; the UI still has
	// to be told to exit.
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		zlog.Error().Err(err).Msg("terminal UI failed")
	}

	coordinator.Close()
	zlog.Info().Msg("goodbye")
}

// initLogger routes the global logger to the configured file. The terminal
// belongs to the UI, so without a file logs are discarded.
func initLogger(cfg *config.Config) (closeLogs func(), err error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = io.Discard
	closeLogs = func() {}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		output = file
		closeLogs = func() { _ = file.Close() }
	}

	zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
	return closeLogs, nil
}

// coordinatorOptions assembles the story generator, the speech services, and
// the audio device according to the configuration. Voice pieces are only
// wired when credentials and an audio backend are available; the game
// degrades to text-only without them.
func coordinatorOptions(ctx context.Context, cfg *config.Config) ([]game.CoordinatorOption, error) {
	var openaiClient *openai.Client
	var completer storygen.TextCompleter

	switch cfg.StoryProvider {
	case config.ProviderOpenAI:
		openaiClient = openai.NewClient(cfg.StoryAPIKey,
			openai.WithBaseURL(cfg.StoryBaseURL),
			openai.WithModel(cfg.StoryModel),
			openai.WithHTTPClient(&http.Client{
				Timeout:   cfg.RequestTimeout,
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			}),
		)
		completer = openaiClient
	case config.ProviderOllama:
		client, err := ollama.NewClient(cfg.OllamaHost, cfg.OllamaModel)
		if err != nil {
			return nil, err
		}
		completer = client
	}

	generator := storygen.NewGenerator(completer,
		storygen.WithTemperature(cfg.Temperature),
		storygen.WithMaxTokens(cfg.MaxTokens),
		storygen.WithHistoryTokenBudget(cfg.HistoryTokenBudget),
		storygen.WithTokenizerModel(cfg.StoryModel),
	)

	opts := []game.CoordinatorOption{
		game.WithGenerator(generator),
		game.WithCaptureLocale(cfg.CaptureLocale),
	}

	if cfg.GeneratedOpening {
		if openaiClient == nil {
			zlog.Warn().Msg("generated openings need the openai provider, using the built-in opening")
		} else if opening, err := openaiClient.GenerateOpening(ctx, cfg.OpeningTheme); err != nil {
			zlog.Warn().Err(err).Msg("failed to generate an opening, using the built-in one")
		} else {
			opts = append(opts, game.WithOpening(*opening))
		}
	}

	if cfg.VoiceEnabled() {
		opts = append(opts, game.WithSpeechCapturer(sttdeepgram.NewTranscriptionClient()))

		speechClient, err := ttsdeepgram.NewSpeechClient(ttsdeepgram.WithVoice(cfg.Voice))
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithSynthesizer(speechClient))
	}

	if cfg.AudioDevicesEnabled() {
		device, err := audioDevice(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithAudioInput(device), game.WithAudioOutput(device))
	}

	return opts, nil
}

type audioClient interface {
	game.AudioInput
	game.AudioOutput
}

func audioDevice(cfg *config.Config) (audioClient, error) {
	switch cfg.AudioBackend {
	case config.AudioBackendPortaudio:
		return portaudio.NewClient(portaudioBufferSize)
	default:
		return miniaudio.NewClient()
	}
}
