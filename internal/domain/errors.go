package domain

import "errors"

var (
	// ErrInvalidReference is returned when the input cannot be parsed as a
	// well-formed product locator. It is the only error Compare surfaces.
	ErrInvalidReference = errors.New("invalid product reference")

	// ErrSourceUnavailable is returned when a single adapter's discovery or
	// fetch failed. It is recovered at the adapter boundary and never
	// surfaced to the caller.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoContent is returned when the content-fetch collaborator could not
	// retrieve page content for a location.
	ErrNoContent = errors.New("no content retrieved")

	// ErrExtractionFailed is returned when the AI collaborator could not
	// produce a structured product description.
	ErrExtractionFailed = errors.New("product extraction failed")

	// ErrPersistenceFailed is returned when the audit store could not record
	// a comparison outcome. It is reflected only in the result's Persisted flag.
	ErrPersistenceFailed = errors.New("failed to persist comparison")

	// ErrCacheMiss is returned when a result is not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")
)
