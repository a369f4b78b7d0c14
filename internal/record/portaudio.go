package record

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// StreamConfig is the capture format requested from a Backend.
type StreamConfig struct {
	SampleRate int
	Channels   int
}

// Stream is an opened capture stream.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// Backend opens capture streams on the default input device. The callback
// runs on the audio thread.
type Backend interface {
	Open(cfg StreamConfig, onInput func([]float32)) (Stream, error)
}

// PortAudio is the Backend used outside tests.
type PortAudio struct {
	initOnce sync.Once
	initErr  error
	mu       sync.Mutex
	inited   bool
}

func NewPortAudio() *PortAudio {
	return &PortAudio{}
}

func (p *PortAudio) init() error {
	p.initOnce.Do(func() {
		p.initErr = portaudio.Initialize()
		if p.initErr == nil {
			p.mu.Lock()
			p.inited = true
			p.mu.Unlock()
		}
	})
	return p.initErr
}

func (p *PortAudio) Open(cfg StreamConfig, onInput func([]float32)) (Stream, error) {
	if err := p.init(); err != nil {
		return nil, &StreamError{Op: "init", Err: err}
	}

	dev, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, &DeviceError{Err: err}
	}
	if dev == nil || dev.MaxInputChannels < cfg.Channels {
		return nil, &DeviceError{Err: fmt.Errorf("default input device has no %d-channel input", cfg.Channels)}
	}

	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = cfg.Channels
	params.SampleRate = float64(cfg.SampleRate)
	params.FramesPerBuffer = portaudio.FramesPerBufferUnspecified

	stream, err := portaudio.OpenStream(params, func(in []float32) {
		onInput(in)
	})
	if err != nil {
		return nil, &StreamError{Op: "open", Err: err}
	}
	return stream, nil
}

// Shutdown releases PortAudio. It is called by the container on exit.
func (p *PortAudio) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inited {
		return nil
	}
	p.inited = false
	return portaudio.Terminate()
}
