package service

import "errors"

// Failure classes for the analysis adapter. Transport-level failures
// carry the wrapped network error and match none of these sentinels.
var (
	// ErrNoResponse means the inference call succeeded but no text
	// came back.
	ErrNoResponse = errors.New("no response generated")

	// ErrMalformedContent means the service returned text that does
	// not parse as the expected JSON contract, even after cleanup.
	ErrMalformedContent = errors.New("malformed analysis content")

	// ErrTimeout means the inference call exceeded its deadline.
	ErrTimeout = errors.New("analysis timed out")

	// ErrValidation means the parsed result failed the normalization
	// pass (empty name, unknown confidence, implausible numbers).
	ErrValidation = errors.New("analysis result failed validation")
)
