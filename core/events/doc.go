// Package events defines the typed game event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - capture.*
//   - turn.*
//   - story.*
//   - narration.*
//   - session.*
//
// Semantics used across the package:
//
//   - Interim: mutable point-in-time transcript snapshot that can change
//     while capture is active.
//   - Final: terminal immutable text for the current capture session.
//   - Ended: lifecycle boundary indicating the operation finished.
//
// capture events
//
//   - CaptureStarted (capture.started): a capture session began.
//   - CaptureInterimTranscript (capture.transcript_interim_updated): mutable
//     interim transcript snapshot while the user is speaking.
//   - CaptureTranscriptFinal (capture.transcript_final): terminal full
//     transcript for the capture session.
//   - CaptureEnded (capture.ended): the capture session finished without a
//     usable transcript.
//   - CaptureFailed (capture.failed): the capture session ended with an
//     error; any partial transcript is discarded.
//
// turn events
//
//   - TurnStarted (turn.started): an utterance was accepted and generation
//     began.
//   - TurnFallback (turn.fallback_engaged): generation failed and the
//     fallback continuation was applied instead.
//   - TurnCompleted (turn.completed): the turn finished and the machine is
//     back to idle.
//
// story events
//
//   - StoryAdvanced (story.advanced): a continuation was applied; carries
//     the new beat and the new choice pair.
//
// narration events
//
//   - NarrationStarted (narration.started): playback of the new beat began.
//   - NarrationEnded (narration.ended): playback finished.
//   - NarrationFailed (narration.failed): playback reported an error; the
//     applied story is kept.
//
// session events
//
//   - StateChanged (session.state_changed): the coordinator moved between
//     states; carries both endpoints as strings.
//   - SessionReset (session.reset): the session returned to its opening
//     story and seed choices.
package events
