// Package partner models employer partner organizations.
package partner

import (
	"log/slog"
	"time"

	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/source"
)

// Partner is an organization partnering with the alumni network, typically
// as an employer posting opportunities.
type Partner struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Industry     string    `json:"industry,omitempty"`
	Website      string    `json:"website,omitempty"`
	ContactName  string    `json:"contactName,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p Partner) GetID() string { return p.ID }

func (p Partner) WithID(id string) Partner {
	p.ID = id
	return p
}

func (p Partner) GetStatus() string { return p.Status }

func (p Partner) WithStatus(status string) Partner {
	p.Status = status
	return p
}

// SearchFields are the fields consulted by free-text search over partners.
func SearchFields() []string {
	return []string{"name", "industry", "contactName", "contactEmail"}
}

// ExactKeys are the criteria keys matched exactly rather than by substring.
func ExactKeys() []string {
	return []string{"status", "industry"}
}

// NewService creates a partner service over the given data source.
func NewService(src source.Source[Partner], logger *slog.Logger) *catalog.Service[Partner] {
	return catalog.NewService("partners", src, logger)
}
