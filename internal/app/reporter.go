package app

import (
	"errors"
	"log/slog"

	"github.com/alanef/local-voice-type/internal/asr"
	"github.com/alanef/local-voice-type/internal/dictation"
	"github.com/alanef/local-voice-type/internal/notify"
	"github.com/alanef/local-voice-type/internal/record"
)

// Reporter surfaces session outcomes to the operator.
type Reporter struct {
	log      *slog.Logger
	notifier *notify.Notifier
	verbose  bool
}

func NewReporter(log *slog.Logger, notifier *notify.Notifier, verbose bool) *Reporter {
	return &Reporter{log: log, notifier: notifier, verbose: verbose}
}

func (r *Reporter) RecordingStarted(id string) {
	if r.verbose {
		r.notifier.Notify("", "Recording...")
	}
}

func (r *Reporter) RecordingFailed(id string, err error) {
	r.notifier.Notify("Microphone unavailable", describe(err))
}

func (r *Reporter) Finished(out dictation.Outcome) {
	log := r.log.With("session", out.SessionID)
	switch out.Status {
	case dictation.StatusFailed:
		r.notifier.Notify("Transcription failed", describe(out.Err))
	case dictation.StatusTooShort:
		log.Debug("session discarded", "duration", out.Duration)
	case dictation.StatusNoSpeech:
		if r.verbose {
			r.notifier.Notify("", "No speech recognized")
		}
	case dictation.StatusTranscribed:
		log.Debug("session complete", "text", out.Text)
	}
}

// describe turns a pipeline error into a short operator-facing message.
func describe(err error) string {
	var (
		de *record.DeviceError
		se *record.StreamError
		te *asr.TransportError
		ve *asr.ServerError
		pe *asr.ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &de):
		return "No input device found"
	case errors.As(err, &se):
		return "Could not open the audio stream"
	case errors.As(err, &te):
		return "Transcription service unreachable"
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &pe):
		return "Unexpected response from transcription service"
	default:
		return err.Error()
	}
}
