package events

const (
	// KindCaptureStarted identifies the start of a capture session.
	KindCaptureStarted Kind = "capture.started"
	// KindCaptureInterimTranscript identifies mutable interim transcript updates.
	KindCaptureInterimTranscript Kind = "capture.transcript_interim_updated"
	// KindCaptureTranscriptFinal identifies the final transcript of a capture session.
	KindCaptureTranscriptFinal Kind = "capture.transcript_final"
	// KindCaptureEnded identifies a capture session that ended without a transcript.
	KindCaptureEnded Kind = "capture.ended"
	// KindCaptureFailed identifies a capture session that ended with an error.
	KindCaptureFailed Kind = "capture.failed"
)

// CaptureStarted marks the start of a capture session.
type CaptureStarted struct{ Base }

// NewCaptureStarted creates a capture started event.
func NewCaptureStarted() CaptureStarted {
	return CaptureStarted{Base: NewBase(KindCaptureStarted)}
}

// CaptureInterimTranscript carries the mutable interim transcript snapshot.
// An empty transcript clears the previous snapshot.
type CaptureInterimTranscript struct {
	Base
	Transcript string
}

// NewCaptureInterimTranscript creates an interim transcript update event.
func NewCaptureInterimTranscript(transcript string) CaptureInterimTranscript {
	return CaptureInterimTranscript{Base: NewBase(KindCaptureInterimTranscript), Transcript: transcript}
}

// CaptureTranscriptFinal carries the final transcript for the capture session.
type CaptureTranscriptFinal struct {
	Base
	Transcript string
}

// NewCaptureTranscriptFinal creates a final transcript event.
func NewCaptureTranscriptFinal(transcript string) CaptureTranscriptFinal {
	return CaptureTranscriptFinal{Base: NewBase(KindCaptureTranscriptFinal), Transcript: transcript}
}

// CaptureEnded marks a capture session that finished without a usable
// transcript.
type CaptureEnded struct{ Base }

// NewCaptureEnded creates a capture ended event.
func NewCaptureEnded() CaptureEnded {
	return CaptureEnded{Base: NewBase(KindCaptureEnded)}
}

// CaptureFailed marks a capture session that ended with an error.
type CaptureFailed struct {
	Base
	Err error
}

// NewCaptureFailed creates a capture failed event.
func NewCaptureFailed(err error) CaptureFailed {
	return CaptureFailed{Base: NewBase(KindCaptureFailed), Err: err}
}
