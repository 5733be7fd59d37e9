// Package spotlight models featured alumni success stories.
package spotlight

import (
	"context"
	"log/slog"
	"time"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/source"
)

// Spotlight is a featured alumni story shown on the community page.
type Spotlight struct {
	ID         string    `json:"id"`
	AlumniName string    `json:"alumniName"`
	Title      string    `json:"title"`
	Story      string    `json:"story,omitempty"`
	GradYear   int       `json:"gradYear,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Featured   bool      `json:"featured"`
	Status     string    `json:"status"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s Spotlight) GetID() string { return s.ID }

func (s Spotlight) WithID(id string) Spotlight {
	s.ID = id
	return s
}

func (s Spotlight) GetStatus() string { return s.Status }

func (s Spotlight) WithStatus(status string) Spotlight {
	s.Status = status
	return s
}

// SearchFields are the fields consulted by free-text search over spotlights.
func SearchFields() []string {
	return []string{"alumniName", "title", "story", "tags"}
}

// ExactKeys are the criteria keys matched exactly rather than by substring.
func ExactKeys() []string {
	return []string{"status", "featured", "gradYear"}
}

// Service wraps the shared catalog surface with spotlight-specific listings.
type Service struct {
	*catalog.Service[Spotlight]
}

// NewService creates a spotlight service over the given data source.
func NewService(src source.Source[Spotlight], logger *slog.Logger) *Service {
	return &Service{Service: catalog.NewService("spotlights", src, logger)}
}

// Featured lists active spotlights flagged for the front page.
func (s *Service) Featured(ctx context.Context, page, limit int) (collection.Page[Spotlight], error) {
	return s.List(ctx, page, limit, collection.Criteria{
		"status":   catalog.StatusActive,
		"featured": "true",
	})
}
