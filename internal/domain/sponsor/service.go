package sponsor

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/source"
)

// ErrInvalidInput indicates invalid fields on sponsor creation.
var ErrInvalidInput = errors.New("invalid sponsor input")

// Service handles sponsor listing and CRUD.
type Service struct {
	*catalog.Service[Sponsor]
}

// NewService creates the sponsors service.
func NewService(src source.Source[Sponsor], logger *slog.Logger) *Service {
	return &Service{Service: catalog.NewService("sponsors", src, logger)}
}

// ValidateCreateInput validates fields required to create a sponsor.
func ValidateCreateInput(s Sponsor) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidInput
	}
	if !validTier(s.Tier) {
		return ErrInvalidInput
	}
	if s.ContributionAmount.IsNegative() {
		return ErrInvalidInput
	}
	return nil
}

func validTier(tier Tier) bool {
	for _, t := range Tiers() {
		if t == tier {
			return true
		}
	}
	return false
}

// Create validates and stores a new sponsor.
func (s *Service) Create(ctx context.Context, sp Sponsor) (Sponsor, error) {
	if err := ValidateCreateInput(sp); err != nil {
		return Sponsor{}, err
	}
	if sp.Status == "" {
		sp.Status = catalog.StatusActive
	}
	return s.Service.Create(ctx, sp)
}

// ByTier lists sponsors of one tier, largest contributions first.
func (s *Service) ByTier(ctx context.Context, tier Tier, page, limit int) (collection.Page[Sponsor], error) {
	if !validTier(tier) {
		return collection.Page[Sponsor]{}, ErrInvalidInput
	}
	return s.List(ctx, page, limit, collection.Criteria{
		"tier":            string(tier),
		source.KeySortBy:  "contributionAmount",
		source.KeySortDir: string(collection.Descending),
	})
}
