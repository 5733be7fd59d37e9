// Package qa models community questions and answers.
package qa

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/source"
)

// StatusPending marks a question still waiting on an answer. Answered items
// move to the shared active status.
const StatusPending = "pending"

// Item is one question asked by a community member, optionally answered.
type Item struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer,omitempty"`
	AskedBy    string    `json:"askedBy,omitempty"`
	AnsweredBy string    `json:"answeredBy,omitempty"`
	Category   string    `json:"category,omitempty"`
	Status     string    `json:"status"`
	AskedAt    time.Time `json:"askedAt"`
	AnsweredAt time.Time `json:"answeredAt,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Answered reports whether the item carries a non-empty answer.
func (i Item) Answered() bool { return strings.TrimSpace(i.Answer) != "" }

func (i Item) GetID() string { return i.ID }

func (i Item) WithID(id string) Item {
	i.ID = id
	return i
}

func (i Item) GetStatus() string { return i.Status }

func (i Item) WithStatus(status string) Item {
	i.Status = status
	return i
}

// SearchFields are the fields consulted by free-text search over items.
func SearchFields() []string {
	return []string{"question", "answer", "askedBy", "category"}
}

// ExactKeys are the criteria keys matched exactly rather than by substring.
func ExactKeys() []string {
	return []string{"status", "category"}
}

// Service wraps the shared catalog surface with answer workflows.
type Service struct {
	*catalog.Service[Item]
}

// NewService creates a Q&A service over the given data source.
func NewService(src source.Source[Item], logger *slog.Logger) *Service {
	return &Service{Service: catalog.NewService("qaItems", src, logger)}
}

// Answer records an answer on the item and marks it active.
func (s *Service) Answer(ctx context.Context, id, answer, answeredBy string) (Item, error) {
	if strings.TrimSpace(answer) == "" {
		return Item{}, source.ErrInvalidInput
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	item.Answer = answer
	item.AnsweredBy = answeredBy
	item.AnsweredAt = time.Now()
	item.Status = catalog.StatusActive
	return s.Update(ctx, id, item)
}

// Unanswered lists pending items, oldest first.
func (s *Service) Unanswered(ctx context.Context, page, limit int) (collection.Page[Item], error) {
	return s.List(ctx, page, limit, collection.Criteria{
		"status":          StatusPending,
		source.KeySortBy:  "askedAt",
		source.KeySortDir: "asc",
	})
}
