package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alumniconnect/client-go/internal/api"
	"github.com/alumniconnect/client-go/internal/source/rest"
	"github.com/alumniconnect/client-go/internal/syncqueue"
)

// RSVPRequest is one attendee registration.
type RSVPRequest struct {
	EventID         string `json:"eventId"`
	UserID          string `json:"userId"`
	TicketType      string `json:"ticketType,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// RSVPTransport submits registrations and cancellations to the backend. The
// REST implementation talks to the API; the memory implementation backs mock
// mode and tests.
type RSVPTransport interface {
	Register(ctx context.Context, req RSVPRequest) error
	Cancel(ctx context.Context, eventID, userID string) error
}

// QueueSender adapts an RSVPTransport to the sync queue's replay interface.
// Queued operations only persist the ticket type, so special requests made
// while offline are not replayed.
type QueueSender struct {
	transport RSVPTransport
}

// NewQueueSender wraps transport for sync queue replay.
func NewQueueSender(transport RSVPTransport) *QueueSender {
	return &QueueSender{transport: transport}
}

func (s *QueueSender) Send(ctx context.Context, op syncqueue.PendingOperation) error {
	switch op.Action {
	case syncqueue.ActionRegister:
		return s.transport.Register(ctx, RSVPRequest{
			EventID:    op.EventID,
			UserID:     op.UserID,
			TicketType: op.TicketType,
		})
	case syncqueue.ActionCancel:
		return s.transport.Cancel(ctx, op.EventID, op.UserID)
	default:
		return fmt.Errorf("unknown rsvp action %q", op.Action)
	}
}

// RESTRSVP submits RSVPs over HTTP: POST /events/{id}/rsvp and
// DELETE /events/{id}/rsvp/{userId}, both answering the uniform envelope.
type RESTRSVP struct {
	client *rest.Raw
}

// NewRESTRSVP creates a transport over the shared raw REST client.
func NewRESTRSVP(client *rest.Raw) *RESTRSVP {
	return &RESTRSVP{client: client}
}

func (t *RESTRSVP) Register(ctx context.Context, req RSVPRequest) error {
	if req.EventID == "" || req.UserID == "" {
		return ErrInvalidRSVP
	}
	path := fmt.Sprintf("/events/%s/rsvp", req.EventID)
	var envelope api.Response[json.RawMessage]
	if err := t.client.Post(ctx, path, req, &envelope); err != nil {
		return err
	}
	if !envelope.Success {
		return fmt.Errorf("rsvp rejected: %s", firstNonEmpty(envelope.Error, envelope.Message, "unknown error"))
	}
	return nil
}

func (t *RESTRSVP) Cancel(ctx context.Context, eventID, userID string) error {
	if eventID == "" || userID == "" {
		return ErrInvalidRSVP
	}
	path := fmt.Sprintf("/events/%s/rsvp/%s", eventID, userID)
	var envelope api.Response[json.RawMessage]
	if err := t.client.Delete(ctx, path, &envelope); err != nil {
		return err
	}
	if !envelope.Success {
		return fmt.Errorf("rsvp cancel rejected: %s", firstNonEmpty(envelope.Error, envelope.Message, "unknown error"))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// MemoryRSVP keeps registrations in memory, the mock-mode transport.
type MemoryRSVP struct {
	mu            sync.Mutex
	registrations map[string]map[string]RSVPRequest
}

// NewMemoryRSVP creates an empty in-memory transport.
func NewMemoryRSVP() *MemoryRSVP {
	return &MemoryRSVP{registrations: make(map[string]map[string]RSVPRequest)}
}

func (t *MemoryRSVP) Register(_ context.Context, req RSVPRequest) error {
	if req.EventID == "" || req.UserID == "" {
		return ErrInvalidRSVP
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	byUser, ok := t.registrations[req.EventID]
	if !ok {
		byUser = make(map[string]RSVPRequest)
		t.registrations[req.EventID] = byUser
	}
	byUser[req.UserID] = req
	return nil
}

func (t *MemoryRSVP) Cancel(_ context.Context, eventID, userID string) error {
	if eventID == "" || userID == "" {
		return ErrInvalidRSVP
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.registrations[eventID], userID)
	return nil
}

// Registered reports whether the transport has seen a registration for the
// pair, for assertions in tests and the mock dashboard.
func (t *MemoryRSVP) Registered(eventID, userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.registrations[eventID][userID]
	return ok
}
