package event

import "errors"

var (
	// ErrInvalidRSVP indicates a request missing the event or user id.
	ErrInvalidRSVP = errors.New("rsvp requires event and user ids")
	// ErrInvalidInput indicates invalid fields on event creation.
	ErrInvalidInput = errors.New("invalid event input")
)
