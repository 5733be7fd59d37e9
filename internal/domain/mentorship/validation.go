package mentorship

import "strings"

// ValidateCreateInput validates fields required to create a match.
func ValidateCreateInput(m Match) error {
	if strings.TrimSpace(m.MentorID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(m.MenteeID) == "" {
		return ErrInvalidInput
	}
	if m.MentorID == m.MenteeID {
		return ErrInvalidInput
	}
	return nil
}

// ValidateTransition validates a requested status transition.
func ValidateTransition(from, to Status) error {
	valid := false
	switch from {
	case StatusPending:
		if to == StatusActive || to == StatusCancelled {
			valid = true
		}
	case StatusActive:
		if to == StatusCompleted || to == StatusCancelled {
			valid = true
		}
	case StatusCompleted, StatusCancelled:
		// terminal
	}

	if !valid {
		return ErrInvalidTransition
	}
	return nil
}
