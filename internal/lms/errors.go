package lms

import "fmt"

// RemoteServiceError is an explicit exception returned by the web service
// inside an otherwise successful response.
type RemoteServiceError struct {
	Function  string
	ErrorCode string
	Exception string
	Message   string
}

func (e *RemoteServiceError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("lms %s: %s (%s)", e.Function, e.Message, e.ErrorCode)
	}
	return fmt.Sprintf("lms %s: %s", e.Function, e.Message)
}

// TransportError covers everything below JSON decoding: connection failures,
// non-2xx statuses and bodies that are not JSON.
type TransportError struct {
	Function string
	Err      error
}

func (e *TransportError) Error() string { return fmt.Sprintf("lms %s: fetch failed: %v", e.Function, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }
