package game

// RequestCapture asks the coordinator to start listening for a spoken
// choice. Outside idle the request is rejected with a capture failed event
// and the session is left untouched.
func (c *Coordinator) RequestCapture() {
	c.runtime.enqueue(requestCaptureCmd{})
}

// CancelCapture asks the active capture session to stop. Speech finalized
// before the stop still becomes the turn's utterance; when nothing was
// finalized the coordinator returns to idle.
func (c *Coordinator) CancelCapture() {
	c.runtime.enqueue(cancelCaptureCmd{})
}

// SubmitUtterance drives a turn from text instead of speech. While a turn
// is in flight at most one submission is held back and started once the
// coordinator returns to idle.
func (c *Coordinator) SubmitUtterance(text string) {
	c.runtime.enqueue(submitUtteranceCmd{text: text})
}

// Reset abandons any in-flight capture or turn and restores the opening
// story and seed choices.
func (c *Coordinator) Reset() {
	c.runtime.enqueue(resetCmd{})
}

// SendAudio forwards externally captured audio into the active capture
// session. Only needed when no audio input device is configured.
func (c *Coordinator) SendAudio(audio []byte) error {
	return c.capture.sendAudio(audio)
}
