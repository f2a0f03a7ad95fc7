package deepgram

import "testing"

func newRecordingCallbacks() (transcriptionCallbacks, *[]string) {
	calls := &[]string{}
	return transcriptionCallbacks{
		interimTranscriptionCallback: func(transcript string) {
			*calls = append(*calls, "interim:"+transcript)
		},
		transcriptionCallback: func(transcript string) {
			*calls = append(*calls, "final:"+transcript)
		},
		startSpeechCallback:  func() { *calls = append(*calls, "speechStarted") },
		utteranceEndCallback: func() { *calls = append(*calls, "utteranceEnd") },
		closedCallback:       func(error) { *calls = append(*calls, "closed") },
	}, calls
}

func TestProcessMessageFinalTranscript(t *testing.T) {
	client := &TranscriptionClient{}
	callbacks, calls := newRecordingCallbacks()
	state := segmentTracker{}

	client.processMessage([]byte(`{"type":"Results","is_final":true,"speech_final":true,"channel":{"alternatives":[{"transcript":"enter the cave"}]}}`), callbacks, &state)

	if len(*calls) != 2 || (*calls)[0] != "final:enter the cave" || (*calls)[1] != "utteranceEnd" {
		t.Fatalf("expected final transcript followed by utterance end, got %v", *calls)
	}
	if state.unended {
		t.Fatal("expected segment to be marked ended after speech final")
	}
}

func TestProcessMessageInterimTranscript(t *testing.T) {
	client := &TranscriptionClient{}
	callbacks, calls := newRecordingCallbacks()
	state := segmentTracker{}

	client.processMessage([]byte(`{"type":"Results","is_final":false,"channel":{"alternatives":[{"transcript":"enter the"}]}}`), callbacks, &state)

	if len(*calls) != 1 || (*calls)[0] != "interim:enter the" {
		t.Fatalf("expected a single interim transcript, got %v", *calls)
	}
	if !state.unended {
		t.Fatal("expected segment to be marked unended after interim transcript")
	}
}

func TestProcessMessageEmptyFinalIgnored(t *testing.T) {
	client := &TranscriptionClient{}
	callbacks, calls := newRecordingCallbacks()
	state := segmentTracker{}

	client.processMessage([]byte(`{"type":"Results","is_final":true,"channel":{"alternatives":[{"transcript":"  "}]}}`), callbacks, &state)

	if len(*calls) != 0 {
		t.Fatalf("expected empty final transcript to be dropped, got %v", *calls)
	}
}

func TestProcessMessageUtteranceEndWithoutTranscript(t *testing.T) {
	client := &TranscriptionClient{}
	callbacks, calls := newRecordingCallbacks()
	state := segmentTracker{}

	client.processMessage([]byte(`{"type":"UtteranceEnd"}`), callbacks, &state)

	if len(*calls) != 0 {
		t.Fatalf("expected utterance end without transcript to be dropped, got %v", *calls)
	}
}

func TestProcessMessageUtteranceEndAfterTranscriptFiresOnce(t *testing.T) {
	client := &TranscriptionClient{}
	callbacks, calls := newRecordingCallbacks()
	state := segmentTracker{}

	client.processMessage([]byte(`{"type":"Results","is_final":true,"channel":{"alternatives":[{"transcript":"go north"}]}}`), callbacks, &state)
	client.processMessage([]byte(`{"type":"UtteranceEnd"}`), callbacks, &state)
	client.processMessage([]byte(`{"type":"UtteranceEnd"}`), callbacks, &state)

	want := []string{"final:go north", "utteranceEnd"}
	if len(*calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, *calls)
	}
	for i := range want {
		if (*calls)[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, *calls)
		}
	}
}

func TestProcessMessageSpeechStarted(t *testing.T) {
	client := &TranscriptionClient{}
	callbacks, calls := newRecordingCallbacks()
	state := segmentTracker{}

	client.processMessage([]byte(`{"type":"SpeechStarted"}`), callbacks, &state)

	if len(*calls) != 1 || (*calls)[0] != "speechStarted" {
		t.Fatalf("expected a speech started call, got %v", *calls)
	}
}
