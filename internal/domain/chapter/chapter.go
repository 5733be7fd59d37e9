// Package chapter models regional alumni chapters.
package chapter

import (
	"log/slog"
	"time"

	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/source"
)

// Chapter is a regional alumni group.
type Chapter struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Region      string    `json:"region,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	Description string    `json:"description,omitempty"`
	LeadName    string    `json:"leadName,omitempty"`
	LeadEmail   string    `json:"leadEmail,omitempty"`
	MemberCount int       `json:"memberCount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c Chapter) GetID() string { return c.ID }

func (c Chapter) WithID(id string) Chapter {
	c.ID = id
	return c
}

func (c Chapter) GetStatus() string { return c.Status }

func (c Chapter) WithStatus(status string) Chapter {
	c.Status = status
	return c
}

// SearchFields are the fields consulted by free-text search over chapters.
func SearchFields() []string {
	return []string{"name", "region", "city", "country", "leadName"}
}

// ExactKeys are the criteria keys matched exactly rather than by substring.
func ExactKeys() []string {
	return []string{"status", "country"}
}

// NewService creates a chapter service over the given data source.
func NewService(src source.Source[Chapter], logger *slog.Logger) *catalog.Service[Chapter] {
	return catalog.NewService("chapters", src, logger)
}
