package mentorship

import "time"

// Status represents the lifecycle state of a mentorship match.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Match pairs a mentor with a mentee around a focus area.
type Match struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentorId"`
	MenteeID  string    `json:"menteeId"`
	Focus     string    `json:"focus,omitempty"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
	EndedAt   time.Time `json:"endedAt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m Match) GetID() string { return m.ID }

func (m Match) WithID(id string) Match {
	m.ID = id
	return m
}

func (m Match) GetStatus() string { return string(m.Status) }

func (m Match) WithStatus(status string) Match {
	m.Status = Status(status)
	return m
}

// SearchFields are the fields consulted by free-text search over matches.
func SearchFields() []string {
	return []string{"focus", "notes"}
}

// ExactKeys are the criteria keys matched exactly rather than by substring.
func ExactKeys() []string {
	return []string{"status", "mentorId", "menteeId"}
}
