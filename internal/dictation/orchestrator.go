// Package dictation turns push-to-talk key transitions into recordings,
// transcriptions and injected text.
package dictation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/alanef/local-voice-type/internal/audio/wav"
	"github.com/alanef/local-voice-type/internal/hotkey"
)

// MinRecordingBytes is the smallest PCM payload worth sending: half a second
// of 16 kHz 16-bit mono audio.
const MinRecordingBytes = 32000

const defaultQueueSize = 16

// Deps are the collaborators the orchestrator drives.
type Deps struct {
	Combo       hotkey.Combo
	Recorder    Recorder
	Muter       Muter
	Injector    Injector
	Transcriber Transcriber
	Observer    Observer
	Logger      *slog.Logger

	// Encode wraps captured samples for upload. Defaults to a 16 kHz WAV.
	Encode func(samples []int16) ([]byte, error)
	// NewID mints session ids. Defaults to random UUIDs.
	NewID func() string
}

// Options tune orchestrator behaviour.
type Options struct {
	Language string
	// Async moves encode, transcribe and inject off the listener goroutine
	// onto a single worker, so injections keep session order.
	Async bool
	// MinRecordingBytes overrides the debounce threshold when positive.
	MinRecordingBytes int
	// QueueSize bounds pending async sessions.
	QueueSize int
}

type session struct {
	id      string
	samples []int16
}

type job struct {
	ctx context.Context
	s   session
}

// Orchestrator is the push-to-talk state machine. Handle must be fed every
// key transition; it is safe to call from several goroutines.
type Orchestrator struct {
	deps Deps
	opts Options
	log  *slog.Logger

	primaryHeld   atomic.Bool
	secondaryHeld atomic.Bool
	recording     atomic.Bool

	// lifecycleMu pairs each flag claim with its capture call. It is never
	// held across encoding, network or injection.
	lifecycleMu sync.Mutex
	sessionID   string

	queueMu sync.Mutex
	closed  bool
	jobs    chan job
	done    chan struct{}
}

func New(deps Deps, opts Options) *Orchestrator {
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Encode == nil {
		deps.Encode = func(samples []int16) ([]byte, error) {
			return wav.Encode(samples, wav.SampleRate)
		}
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if opts.MinRecordingBytes <= 0 {
		opts.MinRecordingBytes = MinRecordingBytes
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	o := &Orchestrator{deps: deps, opts: opts, log: deps.Logger}
	if opts.Async {
		o.jobs = make(chan job, opts.QueueSize)
		o.done = make(chan struct{})
		go o.worker()
	}
	return o
}

// Recording reports whether a capture session is active.
func (o *Orchestrator) Recording() bool {
	return o.recording.Load()
}

// Handle applies one key transition.
func (o *Orchestrator) Handle(ctx context.Context, ev hotkey.Event) {
	role := o.deps.Combo.Role(ev.Key)
	if role == hotkey.RoleOther {
		return
	}
	switch ev.Kind {
	case hotkey.Press:
		o.onPress(role)
	case hotkey.Release:
		o.onRelease(ctx, role)
	}
}

func (o *Orchestrator) onPress(role hotkey.Role) {
	if role == hotkey.RoleSecondary {
		// The trigger key's own character reaches the focused window
		// before the hook sees it; erase it on every press.
		if err := o.deps.Injector.Backspace(); err != nil {
			o.log.Warn("erase trigger character", "error", err)
		}
		o.secondaryHeld.Store(true)
	} else {
		o.primaryHeld.Store(true)
	}

	if o.primaryHeld.Load() && o.secondaryHeld.Load() && !o.recording.Load() {
		o.start()
	}
}

func (o *Orchestrator) onRelease(ctx context.Context, role hotkey.Role) {
	wasRecording := o.recording.Load()
	if role == hotkey.RoleSecondary {
		o.secondaryHeld.Store(false)
	} else {
		o.primaryHeld.Store(false)
	}

	if wasRecording && (!o.primaryHeld.Load() || !o.secondaryHeld.Load()) {
		o.stop(ctx)
	}
}

func (o *Orchestrator) start() {
	o.lifecycleMu.Lock()
	if !o.recording.CompareAndSwap(false, true) {
		o.lifecycleMu.Unlock()
		return
	}
	id := o.deps.NewID()
	o.deps.Muter.Mute()
	err := o.deps.Recorder.Start()
	if err != nil {
		o.deps.Muter.Unmute()
		o.recording.Store(false)
	} else {
		o.sessionID = id
	}
	o.lifecycleMu.Unlock()

	if err != nil {
		o.log.Error("start recording", "session", id, "error", err)
		o.deps.Observer.RecordingFailed(id, err)
		return
	}
	o.log.Info("recording started", "session", id)
	o.deps.Observer.RecordingStarted(id)
}

func (o *Orchestrator) stop(ctx context.Context) {
	o.lifecycleMu.Lock()
	if !o.recording.CompareAndSwap(true, false) {
		o.lifecycleMu.Unlock()
		return
	}
	samples := o.deps.Recorder.Stop()
	o.deps.Muter.Unmute()
	s := session{id: o.sessionID, samples: samples}
	o.sessionID = ""
	o.lifecycleMu.Unlock()

	o.log.Info("recording stopped", "session", s.id, "samples", len(samples), "duration", wav.Duration(len(samples)))

	if wav.PCMBytes(len(samples)) < o.opts.MinRecordingBytes {
		o.log.Info("recording too short, skipped", "session", s.id)
		o.deps.Observer.Finished(o.outcome(s, StatusTooShort, "", nil))
		return
	}

	if o.opts.Async {
		o.enqueue(ctx, s)
		return
	}
	o.process(ctx, s)
}

// process runs the tail of a session: encode, transcribe, inject.
func (o *Orchestrator) process(ctx context.Context, s session) {
	log := o.log.With("session", s.id)

	blob, err := o.deps.Encode(s.samples)
	if err != nil {
		err = fmt.Errorf("encode recording: %w", err)
		log.Error("encode recording", "error", err)
		o.deps.Observer.Finished(o.outcome(s, StatusFailed, "", err))
		return
	}

	text, err := o.deps.Transcriber.Transcribe(ctx, blob, o.opts.Language)
	if err != nil {
		log.Error("transcription failed", "error", err)
		o.deps.Observer.Finished(o.outcome(s, StatusFailed, "", err))
		return
	}
	if text == "" {
		log.Info("no speech recognized")
		o.deps.Observer.Finished(o.outcome(s, StatusNoSpeech, "", nil))
		return
	}

	if err := o.deps.Injector.Text(text); err != nil {
		log.Warn("inject text", "error", err)
	}
	log.Info("transcribed", "chars", len(text))
	o.deps.Observer.Finished(o.outcome(s, StatusTranscribed, text, nil))
}

func (o *Orchestrator) outcome(s session, status Status, text string, err error) Outcome {
	return Outcome{
		SessionID: s.id,
		Samples:   len(s.samples),
		Duration:  wav.Duration(len(s.samples)),
		Status:    status,
		Text:      text,
		Err:       err,
	}
}
