package domain

import "errors"

var (
	// ErrInvalidPreferences signals structurally invalid top-level input.
	ErrInvalidPreferences = errors.New("invalid preferences")
	// ErrDogNotFound signals a missing listing.
	ErrDogNotFound = errors.New("dog not found")
	// ErrFeedUnavailable signals a listing feed failure.
	ErrFeedUnavailable = errors.New("listing feed unavailable")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrGenerationFailed signals a text-generation provider failure.
	// Never surfaced to end users; the pipeline falls back to templates.
	ErrGenerationFailed = errors.New("text generation failed")
)
