package mentorship

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid mentorship input")
	ErrInvalidTransition = errors.New("invalid mentorship status transition")
)
