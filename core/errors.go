package game

import "fmt"

// CaptureStartError reports a failure to begin a speech capture session.
// The coordinator absorbs it and stays idle.
type CaptureStartError struct {
	Err error
}

func (e *CaptureStartError) Error() string {
	return fmt.Sprintf("failed to start capture: %v", e.Err)
}

func (e *CaptureStartError) Unwrap() error { return e.Err }

// CaptureStopError reports a failure to finalize a capture session. The
// coordinator absorbs it and resolves the session to idle.
type CaptureStopError struct {
	Err error
}

func (e *CaptureStopError) Error() string {
	return fmt.Sprintf("failed to stop capture: %v", e.Err)
}

func (e *CaptureStopError) Unwrap() error { return e.Err }

// GenerationError reports a transport or parse failure while producing a
// story continuation. The coordinator absorbs it into the fallback
// continuation.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("story generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PlaybackError reports a failure during beat narration. The coordinator
// absorbs it; the applied story update is kept.
type PlaybackError struct {
	Err error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("narration playback failed: %v", e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }
