package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDeadlinePassed        = errors.New("game week deadline has passed")
	ErrNotYetVisible         = errors.New("roster is not visible before the deadline")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
