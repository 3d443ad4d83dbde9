package scrape

import (
	"errors"
	"fmt"
)

// ErrFetch matches every *FetchFailure through errors.Is
var ErrFetch = errors.New("fetch profiles failed")

// FailureKind classifies why a fetch failed
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureStatus    FailureKind = "status"
	FailurePayload   FailureKind = "payload"
)

// FetchFailure is returned for any failed scrape request
type FetchFailure struct {
	Kind       FailureKind
	Endpoint   string
	StatusCode int
	Err        error
}

func (f *FetchFailure) Error() string {
	if f.Kind == FailureStatus {
		return fmt.Sprintf("scrape %s: unexpected status %d: %v", f.Endpoint, f.StatusCode, f.Err)
	}
	return fmt.Sprintf("scrape %s: %s error: %v", f.Endpoint, f.Kind, f.Err)
}

func (f *FetchFailure) Unwrap() error { return f.Err }

func (f *FetchFailure) Is(target error) bool { return target == ErrFetch }
