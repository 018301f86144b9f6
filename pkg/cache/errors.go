package cache

import "errors"

var (
	// ErrNotFound means the key is absent or expired.
	ErrNotFound = errors.New("cache: entry not found")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("cache: closed")

	ErrMarshal   = errors.New("cache: marshal value")
	ErrUnmarshal = errors.New("cache: unmarshal value")
)
