package meadow

import "errors"

// package errors
var (
	// ErrLoadFailed wraps every failure reported by a resource loader.
	// Failed loads are never cached.
	ErrLoadFailed = errors.New("meadow: resource load failed")

	// ErrInvalidGeometry reports a region or size with a non-positive
	// dimension, or a font point size <= 0.
	ErrInvalidGeometry = errors.New("meadow: invalid geometry")

	// ErrBackend reports a draw, clear or present rejected by the backend.
	ErrBackend = errors.New("meadow: backend rejected call")

	// ErrNilDependency is returned by constructors given a nil collaborator.
	ErrNilDependency = errors.New("meadow: required dependency is nil")

	// ErrCacheClosed is returned by Get and Load after Close.
	ErrCacheClosed = errors.New("meadow: cache is closed")
)
