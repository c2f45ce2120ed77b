package dictionary

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means every resolution tier finished without a usable entry.
	ErrNotFound = errors.New("dictionary: word not found")
	// ErrUpstream means the authority failed at the transport level or answered
	// with something that could not be understood.
	ErrUpstream = errors.New("dictionary: upstream error")
)

// NotFoundError is a not-found answer from the authority, optionally carrying
// the spelling suggestions it offered.
type NotFoundError struct {
	Word        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("dictionary: %q not found (suggestions: %v)", e.Word, e.Suggestions)
	}
	return fmt.Sprintf("dictionary: %q not found", e.Word)
}

// Is reports ErrNotFound equivalence.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamError describes a failed call to the authority.
type UpstreamError struct {
	Op     string
	Word   string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("dictionary: %s %q", e.Op, e.Word)
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrUpstream equivalence.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func (e *UpstreamError) Unwrap() error { return e.Err }
