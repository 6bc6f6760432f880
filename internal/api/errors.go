package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL indicates the configured server URL cannot be used
	ErrInvalidBaseURL = errors.New("invalid API base URL")

	// ErrRejected indicates the server answered 2xx but did not report success
	ErrRejected = errors.New("server rejected the request")

	// ErrEmptyResponse indicates a 2xx response without the expected payload
	ErrEmptyResponse = errors.New("empty response from server")
)

// RemoteError is returned by every Client call that fails: transport errors,
// non-2xx responses, undecodable bodies and server-side rejections.
type RemoteError struct {
	Op         string // e.g. "update item status"
	StatusCode int    // 0 when no response was received
	Message    string // server-provided message, if any
	Err        error
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a RemoteError for a 404 response
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == 404
}
