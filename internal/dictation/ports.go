package dictation

import (
	"context"
	"time"
)

// Recorder captures microphone audio between Start and Stop.
type Recorder interface {
	Start() error
	Stop() []int16
}

// Muter silences system output while recording.
type Muter interface {
	Mute()
	Unmute()
}

// Injector types into the focused window.
type Injector interface {
	Backspace() error
	Text(text string) error
}

// Transcriber turns an encoded recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Observer is told about session lifecycle changes.
type Observer interface {
	RecordingStarted(sessionID string)
	RecordingFailed(sessionID string, err error)
	Finished(out Outcome)
}

// Status is how a capture session ended.
type Status string

const (
	StatusTranscribed Status = "transcribed"
	StatusNoSpeech    Status = "no_speech"
	StatusTooShort    Status = "too_short"
	StatusFailed      Status = "failed"
)

// Outcome reports the end of one capture session.
type Outcome struct {
	SessionID string
	Samples   int
	Duration  time.Duration
	Status    Status
	Text      string
	Err       error
}

type nopObserver struct{}

func (nopObserver) RecordingStarted(string) {}
func (nopObserver) RecordingFailed(string, error) {}
func (nopObserver) Finished(Outcome) {}
