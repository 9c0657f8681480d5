package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrMisconfigured         = errors.New("service misconfigured")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
