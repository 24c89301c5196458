package vault

import "fmt"

// Error wraps a secret-store backend failure.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("vault %s failed for %q: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AuthError indicates the Vault token was rejected.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("vault authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
