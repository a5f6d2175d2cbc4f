package draft

import "errors"

var (
	// ErrMissingDocument indicates no draft document exists at the resolved location.
	ErrMissingDocument = errors.New("draft document not found")

	// ErrMalformed indicates the draft document could not be parsed.
	ErrMalformed = errors.New("malformed draft document")
)
