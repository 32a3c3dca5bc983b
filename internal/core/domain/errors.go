package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyBatch indicates there was no usable text to embed.
	// A rebuild aborts on this; the serving path never sees it.
	ErrEmptyBatch = errors.New("empty embedding batch")

	// ErrIndexUnavailable indicates no snapshot has been built or loaded
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrNoMatches indicates a search returned no in-range positions
	ErrNoMatches = errors.New("no matches")

	// ErrAlignment indicates the vector count and passage count disagree.
	// Serving on a misaligned snapshot returns wrong content with no error
	// signal, so this must fail a rebuild or load outright.
	ErrAlignment = errors.New("vector/passage alignment violated")

	// ErrProviderUnavailable indicates an embedding or generation call
	// failed or timed out
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrQuotaExceeded indicates the account used up its daily turn limit
	ErrQuotaExceeded = errors.New("daily quota exceeded")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)
