package mentorship

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/source"
)

// Service manages mentorship matches and their lifecycle.
type Service struct {
	*catalog.Service[Match]
}

// NewService creates a mentorship service over the given data source.
func NewService(src source.Source[Match], logger *slog.Logger) *Service {
	return &Service{Service: catalog.NewService("mentorships", src, logger)}
}

// Create validates and stores a new match. New matches start pending.
func (s *Service) Create(ctx context.Context, m Match) (Match, error) {
	if err := ValidateCreateInput(m); err != nil {
		return Match{}, err
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return s.Service.Create(ctx, m)
}

// Transition moves a match to the requested status, enforcing the
// pending -> active -> completed/cancelled lifecycle.
func (s *Service) Transition(ctx context.Context, id string, to Status) (Match, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Match{}, err
	}
	if err := ValidateTransition(current.Status, to); err != nil {
		return Match{}, err
	}

	updated := current
	updated.Status = to
	switch to {
	case StatusActive:
		updated.StartedAt = time.Now()
	case StatusCompleted, StatusCancelled:
		updated.EndedAt = time.Now()
	}
	result, err := s.Update(ctx, id, updated)
	if err != nil {
		return Match{}, fmt.Errorf("transitioning mentorship %q to %s: %w", id, to, err)
	}
	return result, nil
}

// ForMentor lists matches where the given user is the mentor.
func (s *Service) ForMentor(ctx context.Context, mentorID string, page, limit int) (collection.Page[Match], error) {
	return s.List(ctx, page, limit, collection.Criteria{"mentorId": mentorID})
}

// ForMentee lists matches where the given user is the mentee.
func (s *Service) ForMentee(ctx context.Context, menteeID string, page, limit int) (collection.Page[Match], error) {
	return s.List(ctx, page, limit, collection.Criteria{"menteeId": menteeID})
}
