package record

import (
	"errors"
	"fmt"
)

// ErrAlreadyRecording is returned by Start while a stream is active.
var ErrAlreadyRecording = errors.New("recorder already running")

// DeviceError reports that no usable input device exists.
type DeviceError struct {
	Err error
}

func (e *DeviceError) Error() string {
	if e.Err == nil {
		return "no input device"
	}
	return fmt.Sprintf("no input device: %v", e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// StreamError reports that the capture stream could not be built or started.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s stream failed: %v", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
