// Package syncqueue persists RSVP operations that could not be submitted
// (offline clients, transport failures) and replays them against the backend
// once connectivity returns, reconciling the locally committed RSVP state.
package syncqueue

import "time"

// Action is the RSVP operation kind.
type Action string

const (
	ActionRegister Action = "register"
	ActionCancel   Action = "cancel"
)

// PendingOperation is one queued RSVP submission, keyed by (event, user). At
// most one operation is queued per pair; a newer operation replaces the old.
type PendingOperation struct {
	EventID    string    `json:"eventId"`
	UserID     string    `json:"userId"`
	Action     Action    `json:"action"`
	TicketType string    `json:"ticketType,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Status is a user's effective RSVP state for one event. A queued operation
// takes priority over committed state.
type Status string

const (
	StatusNone        Status = "none"
	StatusRegistered  Status = "registered"
	StatusPendingSync Status = "pending_sync"
)

// Result summarizes one replay run. A failure of one operation never aborts
// the rest of the batch.
type Result struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// SyncStatus is the persisted bookkeeping snapshot under the syncStatus key.
type SyncStatus struct {
	LastAttempt  time.Time `json:"lastAttempt"`
	LastSuccess  time.Time `json:"lastSuccess"`
	PendingCount int       `json:"pendingCount"`
}
