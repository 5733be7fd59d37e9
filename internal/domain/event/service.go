package event

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/source"
	"github.com/alumniconnect/client-go/internal/syncqueue"
)

// Service handles event listing, CRUD, and RSVP. RSVP submissions that
// cannot reach the backend degrade to queued pending-sync operations instead
// of failing the user action.
type Service struct {
	*catalog.Service[Event]

	transport RSVPTransport
	queue     *syncqueue.Queue
	conn      syncqueue.Connectivity
	logger    *slog.Logger
}

// NewService creates the events service. queue and conn may be nil when
// offline support is not composed in; RSVPs then fail hard on transport
// errors.
func NewService(src source.Source[Event], transport RSVPTransport, queue *syncqueue.Queue, conn syncqueue.Connectivity, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Service:   catalog.NewService("events", src, logger),
		transport: transport,
		queue:     queue,
		conn:      conn,
		logger:    logger,
	}
}

// ValidateCreateInput validates fields required to create an event.
func ValidateCreateInput(e Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrInvalidInput
	}
	if e.StartDate.IsZero() {
		return ErrInvalidInput
	}
	if !e.EndDate.IsZero() && e.EndDate.Before(e.StartDate) {
		return ErrInvalidInput
	}
	return nil
}

// Create validates and stores a new event, defaulting its status to draft.
func (s *Service) Create(ctx context.Context, e Event) (Event, error) {
	if err := ValidateCreateInput(e); err != nil {
		return Event{}, err
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
	return s.Service.Create(ctx, e)
}

// Upcoming lists active events ordered by start date.
func (s *Service) Upcoming(ctx context.Context, page, limit int) (collection.Page[Event], error) {
	return s.List(ctx, page, limit, collection.Criteria{
		"status":         string(StatusActive),
		source.KeySortBy: "startDate",
	})
}

// RSVP registers the user for the event. When the device is offline or the
// transport fails, the registration is queued for later sync and the
// returned status is pending_sync; the action itself never fails for
// transport reasons.
func (s *Service) RSVP(ctx context.Context, req RSVPRequest) (syncqueue.Status, error) {
	if req.EventID == "" || req.UserID == "" {
		return syncqueue.StatusNone, ErrInvalidRSVP
	}
	op := syncqueue.PendingOperation{
		EventID:    req.EventID,
		UserID:     req.UserID,
		Action:     syncqueue.ActionRegister,
		TicketType: req.TicketType,
	}

	if s.offline() {
		return s.enqueue(ctx, op)
	}

	if err := s.transport.Register(ctx, req); err != nil {
		if s.queue == nil {
			return syncqueue.StatusNone, err
		}
		s.logger.Warn("rsvp submission failed, queueing for sync", "event", req.EventID, "user", req.UserID, "error", err)
		return s.enqueue(ctx, op)
	}

	return syncqueue.StatusRegistered, s.settle(ctx, op)
}

// CancelRSVP withdraws the user's registration, queueing the cancellation
// when the backend is unreachable.
func (s *Service) CancelRSVP(ctx context.Context, eventID, userID string) (syncqueue.Status, error) {
	if eventID == "" || userID == "" {
		return syncqueue.StatusNone, ErrInvalidRSVP
	}
	op := syncqueue.PendingOperation{
		EventID: eventID,
		UserID:  userID,
		Action:  syncqueue.ActionCancel,
	}

	if s.offline() {
		return s.enqueue(ctx, op)
	}

	if err := s.transport.Cancel(ctx, eventID, userID); err != nil {
		if s.queue == nil {
			return syncqueue.StatusNone, err
		}
		s.logger.Warn("rsvp cancellation failed, queueing for sync", "event", eventID, "user", userID, "error", err)
		return s.enqueue(ctx, op)
	}

	return syncqueue.StatusNone, s.settle(ctx, op)
}

// RSVPStatus resolves the user's effective RSVP state for the event.
func (s *Service) RSVPStatus(ctx context.Context, eventID, userID string) syncqueue.Status {
	if s.queue == nil {
		return syncqueue.StatusNone
	}
	return s.queue.UserStatus(ctx, eventID, userID)
}

func (s *Service) offline() bool {
	return s.conn != nil && s.queue != nil && !s.conn.Online()
}

func (s *Service) enqueue(ctx context.Context, op syncqueue.PendingOperation) (syncqueue.Status, error) {
	if err := s.queue.Add(ctx, op); err != nil {
		return syncqueue.StatusNone, err
	}
	return syncqueue.StatusPendingSync, nil
}

// settle commits the local state transition after a direct submission and
// drops any stale queued operation for the pair.
func (s *Service) settle(ctx context.Context, op syncqueue.PendingOperation) error {
	if s.queue == nil {
		return nil
	}
	if err := s.queue.Remove(ctx, op.EventID, op.UserID); err != nil {
		s.logger.Warn("failed to drop stale pending rsvp", "event", op.EventID, "user", op.UserID, "error", err)
	}
	return s.queue.Commit(ctx, op)
}
