package event

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an event.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Event is one network event: a reunion, a chapter meetup, a fundraiser.
type Event struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Location      string          `json:"location,omitempty"`
	ChapterID     string          `json:"chapterId,omitempty"`
	Category      string          `json:"category,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Status        Status          `json:"status"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Capacity      int             `json:"capacity,omitempty"`
	AttendeeCount int             `json:"attendeeCount"`
	TicketPrice   decimal.Decimal `json:"ticketPrice"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (e Event) GetID() string { return e.ID }

func (e Event) WithID(id string) Event {
	e.ID = id
	return e
}

func (e Event) GetStatus() string { return string(e.Status) }

func (e Event) WithStatus(status string) Event {
	e.Status = Status(status)
	return e
}

// SearchFields are the fields consulted by free-text search over events.
func SearchFields() []string {
	return []string{"title", "description", "location", "tags"}
}

// ExactKeys are the criteria keys matched exactly rather than by substring.
func ExactKeys() []string {
	return []string{"status", "chapterId", "category"}
}
