package syncqueue

import "context"

// Sender submits one RSVP operation to the remote backend.
type Sender interface {
	Send(ctx context.Context, op PendingOperation) error
}

// Connectivity reports whether the client can reach the network and streams
// online/offline transitions, the navigator.onLine analog.
type Connectivity interface {
	Online() bool
	Changes() <-chan bool
}

// Notifier is the side channel on which successful background syncs are
// surfaced to the user.
type Notifier interface {
	Notify(message string)
}
