// Package opportunity models job and internship postings from partners.
package opportunity

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/source"
)

// Opportunity is a job, internship, or volunteer posting.
type Opportunity struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	PartnerID   string          `json:"partnerId,omitempty"`
	Company     string          `json:"company,omitempty"`
	Location    string          `json:"location,omitempty"`
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	SalaryMin   decimal.Decimal `json:"salaryMin"`
	SalaryMax   decimal.Decimal `json:"salaryMax"`
	Remote      bool            `json:"remote"`
	Status      string          `json:"status"`
	PostedAt    time.Time       `json:"postedAt"`
	ClosesAt    time.Time       `json:"closesAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (o Opportunity) GetID() string { return o.ID }

func (o Opportunity) WithID(id string) Opportunity {
	o.ID = id
	return o
}

func (o Opportunity) GetStatus() string { return o.Status }

func (o Opportunity) WithStatus(status string) Opportunity {
	o.Status = status
	return o
}

// SearchFields are the fields consulted by free-text search over postings.
func SearchFields() []string {
	return []string{"title", "company", "location", "description"}
}

// ExactKeys are the criteria keys matched exactly rather than by substring.
func ExactKeys() []string {
	return []string{"status", "partnerId", "type", "remote"}
}

// Service wraps the shared catalog surface with posting-specific listings.
type Service struct {
	*catalog.Service[Opportunity]
}

// NewService creates an opportunity service over the given data source.
func NewService(src source.Source[Opportunity], logger *slog.Logger) *Service {
	return &Service{Service: catalog.NewService("opportunities", src, logger)}
}

// Open lists active postings, newest first.
func (s *Service) Open(ctx context.Context, page, limit int) (collection.Page[Opportunity], error) {
	return s.List(ctx, page, limit, collection.Criteria{
		"status":          catalog.StatusActive,
		source.KeySortBy:  "postedAt",
		source.KeySortDir: "desc",
	})
}
