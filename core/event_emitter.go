package game

import (
	"github.com/codemaster-omvardhan/Echo-Tale/core/events"
)

type eventEmitter func(event events.Event)

func noopEventEmitter(events.Event) {}

// newCallbackEventEmitter fans a single event stream out to the callbacks
// registered through RunOptions. The catch-all callback always fires first
// so listeners observe events in emission order regardless of which typed
// callbacks are set.
func newCallbackEventEmitter(options RunOptions) eventEmitter {
	return func(event events.Event) {
		if options.onEvent != nil {
			options.onEvent(event)
		}

		switch event := event.(type) {
		case events.StateChanged:
			if options.onStateChanged != nil {
				options.onStateChanged(State(event.From), State(event.To))
			}
		case events.CaptureInterimTranscript:
			if options.onInterimTranscription != nil {
				options.onInterimTranscription(event.Transcript)
			}
		case events.CaptureTranscriptFinal:
			if options.onTranscription != nil {
				options.onTranscription(event.Transcript)
			}
		case events.CaptureFailed:
			if options.onCaptureFailed != nil {
				options.onCaptureFailed(event.Err)
			}
		case events.StoryAdvanced:
			if options.onStoryAdvanced != nil {
				options.onStoryAdvanced(event.Beat, event.Choices)
			}
		case events.TurnFallback:
			if options.onTurnFallback != nil {
				options.onTurnFallback(event.Err)
			}
		}
	}
}
