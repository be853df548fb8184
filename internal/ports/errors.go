package ports

import "errors"

var ErrNotFound = errors.New("not found")

// ErrCacheMiss is the expected outcome of a cache lookup for an unknown key.
// It is not a failure: the edge falls through to the remote provider.
var ErrCacheMiss = errors.New("cache miss")

// ErrUpstream covers transport failures and malformed provider responses.
var ErrUpstream = errors.New("upstream error")

// ErrInvalid marks a request rejected by validation before touching a store.
var ErrInvalid = errors.New("invalid request")
