package service

import "errors"

// Sentinel errors for the result and report services. Handlers map these
// onto HTTP status codes.
var (
	ErrNotFound          = errors.New("evaluation result not found")
	ErrInvalidTransition = errors.New("status transition does not advance the lifecycle")
	ErrNotCompleted      = errors.New("evaluation result has no completion data to report on")
	ErrGenerationFailed  = errors.New("report generation failed")
)
