package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/codemaster-omvardhan/Echo-Tale/core/audio"
	"github.com/codemaster-omvardhan/Echo-Tale/core/texttospeech"
	"github.com/gorilla/websocket"
)

// Speak synthesizes the given text and streams audio chunks to the
// configured callback in order. It returns once every chunk for the
// utterance has been delivered, or earlier when the context is cancelled
// or the stream fails.
func (c *SpeechClient) Speak(ctx context.Context, text string, opts ...texttospeech.SpeakOption) error {
	options := &texttospeech.SpeakOptions{
		SpeechAudioCallback: func([]byte) {},
		EncodingInfo:        audio.GetDefaultPlaybackEncodingInfo(),
	}
	for _, opt := range opts {
		opt(options)
	}

	encoding, err := convertEncoding(options.EncodingInfo)
	if err != nil {
		return fmt.Errorf("invalid encoding: %w", err)
	}

	conn, err := connectWebsocket(c.baseURL, c.voice, *encoding)
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(sendTextMsg(text)); err != nil {
		return fmt.Errorf("failed to send text to deepgram through websocket: %w", err)
	}
	if err := conn.WriteJSON(flushMsg); err != nil {
		return fmt.Errorf("failed to flush deepgram buffer through websocket: %w", err)
	}

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("speech stream failed: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			if len(msg) > 0 {
				options.SpeechAudioCallback(msg)
			}
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				log.Printf("Failed to unmarshal deepgram message: %v", err)
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				// All audio for the utterance has been delivered.
				if err := conn.WriteJSON(closeMsg); err != nil {
					log.Printf("Failed to send close message to deepgram websocket: %v", err)
				}
				return nil
			case "Warning":
				var warning struct {
					Description string `json:"description"`
				}
				_ = json.Unmarshal(msg, &warning)
				log.Printf("Deepgram warning: %s", warning.Description)
			}
		}
	}
}

func connectWebsocket(baseURL string, voice deepgramVoice, encoding encodingInfo) (*websocket.Conn, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	speakURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	speakURL.Path = "/v1/speak"

	queryParams := speakURL.Query()
	queryParams.Set("model", string(voice))
	queryParams.Set("encoding", encoding.Format.Name())
	queryParams.Set("sample_rate", strconv.Itoa(encoding.SampleRate))
	queryParams.Set("container", "none")
	speakURL.RawQuery = queryParams.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(speakURL.String(),
		http.Header{"Authorization": {"Token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

type websocketMessage struct {
	Type string `json:"type"`
}

var (
	sendTextMsg = func(text string) struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} {
		return struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: "Speak", Text: text}
	}
	flushMsg = websocketMessage{Type: "Flush"}
	closeMsg = websocketMessage{Type: "Close"}
)
