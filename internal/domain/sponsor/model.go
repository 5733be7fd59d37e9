package sponsor

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is a sponsorship level.
type Tier string

const (
	TierPlatinum Tier = "platinum"
	TierGold     Tier = "gold"
	TierSilver   Tier = "silver"
	TierBronze   Tier = "bronze"
)

// Tiers lists the accepted sponsorship levels.
func Tiers() []Tier {
	return []Tier{TierPlatinum, TierGold, TierSilver, TierBronze}
}

// Sponsor is one sponsoring organization.
type Sponsor struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Tier               Tier            `json:"tier"`
	Status             string          `json:"status"`
	ContactEmail       string          `json:"contactEmail,omitempty"`
	Website            string          `json:"website,omitempty"`
	LogoURL            string          `json:"logoUrl,omitempty"`
	ContributionAmount decimal.Decimal `json:"contributionAmount"`
	RenewalDate        time.Time       `json:"renewalDate,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func (s Sponsor) GetID() string { return s.ID }

func (s Sponsor) WithID(id string) Sponsor {
	s.ID = id
	return s
}

func (s Sponsor) GetStatus() string { return s.Status }

func (s Sponsor) WithStatus(status string) Sponsor {
	s.Status = status
	return s
}

// SearchFields are the fields consulted by free-text search over sponsors.
func SearchFields() []string {
	return []string{"name", "contactEmail", "website"}
}

// ExactKeys are the criteria keys matched exactly rather than by substring.
func ExactKeys() []string {
	return []string{"status", "tier"}
}
