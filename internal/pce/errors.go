package pce

import "fmt"

// AuthError indicates the PCE rejected the credential (HTTP 401).
type AuthError struct {
	StatusCode int
	Body       map[string]interface{}
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// APIError indicates a non-2xx response other than 401. Body holds the parsed
// error payload, or the raw text under "raw_response" when the body is not
// valid JSON.
type APIError struct {
	StatusCode int
	Body       map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed (status %d): %v", e.StatusCode, e.Body)
}

// ConnectionError indicates a transport failure or an unparseable success
// response. Connection errors are retried before they surface.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
