package asr

import "fmt"

// TransportError means the request never produced a readable response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport error: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Body)
}

// ParseError means a 2xx response body could not be interpreted.
type ParseError struct {
	Body string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse response: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }
