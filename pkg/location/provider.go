package location

import (
	"context"
	"errors"
)

var (
	// ErrNoFix is returned when the source produced no usable position.
	ErrNoFix = errors.New("no valid GPS data found")
	// ErrTimeout is returned when no fix was resolved before the context deadline.
	ErrTimeout = errors.New("timed out waiting for location fix")
)

// Provider interface defines the methods for location providers
type Provider interface {
	// RequestPermission reports whether the process may access the location source right now.
	// A denial is a regular result and is not reported as an error.
	RequestPermission(ctx context.Context) (Permission, error)
	// GetLocation blocks until a fix is resolved, ctx is done or the source fails.
	GetLocation(ctx context.Context) (Location, error)
	Close() error
}
