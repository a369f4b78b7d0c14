// Package record captures microphone audio into an in-memory sample buffer.
package record

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/alanef/local-voice-type/internal/audio/wav"
)

// State represents recorder state.
type State int

const (
	StateIdle State = iota
	StateRecording
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	default:
		return "idle"
	}
}

// Recorder owns at most one active capture stream and the buffer it fills.
type Recorder struct {
	backend Backend
	log     *slog.Logger
	debug   bool

	mu     sync.Mutex
	stream Stream
	gate   atomic.Bool
	buf    SampleBuffer
}

// New creates a recorder on top of backend. debug enables per-session
// capture logging.
func New(backend Backend, log *slog.Logger, debug bool) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{backend: backend, log: log, debug: debug}
}

// Start clears the buffer and begins capturing from the default input device.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stream != nil {
		return ErrAlreadyRecording
	}

	r.buf.Reset()
	cfg := StreamConfig{SampleRate: wav.SampleRate, Channels: wav.Channels}
	stream, err := r.backend.Open(cfg, r.onInput)
	if err != nil {
		return err
	}

	r.gate.Store(true)
	if err := stream.Start(); err != nil {
		r.gate.Store(false)
		_ = stream.Close()
		var se *StreamError
		if errors.As(err, &se) {
			return err
		}
		return &StreamError{Op: "start", Err: err}
	}
	r.stream = stream

	if r.debug {
		r.log.Debug("capture started", "sample_rate", cfg.SampleRate, "channels", cfg.Channels)
	}
	return nil
}

// Stop ends the active capture and returns everything captured. With no
// active stream it returns an empty slice.
func (r *Recorder) Stop() []int16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stream == nil {
		return []int16{}
	}

	if err := r.stream.Stop(); err != nil {
		r.log.Warn("stop capture stream", "error", err)
	}
	r.gate.Store(false)
	if err := r.stream.Close(); err != nil {
		r.log.Warn("close capture stream", "error", err)
	}
	r.stream = nil

	samples := r.buf.Snapshot()
	if r.debug {
		r.log.Debug("capture stopped", "samples", len(samples), "duration", wav.Duration(len(samples)))
	}
	return samples
}

// State returns the current recorder state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stream != nil {
		return StateRecording
	}
	return StateIdle
}

func (r *Recorder) onInput(in []float32) {
	if !r.gate.Load() {
		return
	}
	r.buf.AppendFloat(in)
}
