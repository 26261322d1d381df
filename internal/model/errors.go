package model

import "errors"

// Error taxonomy shared by every layer. Callers wrap these with fmt.Errorf("%w: ...")
// and the HTTP boundary maps them to status codes with errors.Is.
var (
	// ErrInvalidInput marks a malformed upload, unreadable document or bad parameter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyInput marks a document from which no content could be extracted.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidRange marks page bounds outside the document.
	ErrInvalidRange = errors.New("invalid page range")
	// ErrNotFound marks a missing or disallowed output name.
	ErrNotFound = errors.New("output not found")
	// ErrUpstream marks an unexpected failure of the PDF or LLM library.
	ErrUpstream = errors.New("upstream failure")
)
