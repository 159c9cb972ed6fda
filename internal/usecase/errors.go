package usecase

import "errors"

// Request errors.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Routing and upstream errors. ErrUnknownProgramFamily is a configuration
// fault and is never mapped to a fallback adapter.
var (
	ErrUnknownProgramFamily  = errors.New("unknown program family")
	ErrUnsupported           = errors.New("operation not offered by the program's upstream")
	ErrDependencyUnavailable = errors.New("upstream dependency unavailable")
	ErrAllCandidatesFailed   = errors.New("every live event candidate failed to load")
)
