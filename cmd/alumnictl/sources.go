package main

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alumniconnect/client-go/internal/config"
	"github.com/alumniconnect/client-go/internal/domain/event"
	"github.com/alumniconnect/client-go/internal/source"
	"github.com/alumniconnect/client-go/internal/source/memory"
	"github.com/alumniconnect/client-go/internal/source/rest"
)

// buildEventSource composes either the fixture-backed mock source or the
// REST client, decided once at startup.
func buildEventSource(cfg config.Config, mock bool, logger *slog.Logger) (source.Source[event.Event], event.RSVPTransport) {
	if mock {
		logger.Info("using mock data source")
		col := memory.New(seedEvents(), event.SearchFields(),
			memory.WithExactKeys[event.Event](event.ExactKeys()...))
		return col, event.NewMemoryRSVP()
	}

	logger.Info("using REST data source", "base_url", cfg.API.BaseURL)
	client := rest.New[event.Event](cfg.API.BaseURL, "/events", nil, logger)
	transport := event.NewRESTRSVP(rest.NewRaw(cfg.API.BaseURL, nil, logger))
	return client, transport
}

func seedEvents() []event.Event {
	now := time.Now()
	return []event.Event{
		{
			ID:          "evt-001",
			Title:       "Annual Alumni Gala",
			Description: "Black-tie fundraiser with keynote and awards.",
			Location:    "Grand Hall, Chicago",
			Category:    "fundraiser",
			Status:      event.StatusActive,
			StartDate:   now.AddDate(0, 1, 0),
			EndDate:     now.AddDate(0, 1, 0).Add(5 * time.Hour),
			Capacity:    400,
			TicketPrice: decimal.NewFromInt(150),
			CreatedAt:   now.AddDate(0, -2, 0),
		},
		{
			ID:          "evt-002",
			Title:       "Boston Chapter Meetup",
			Description: "Casual networking over drinks.",
			Location:    "Harbor Taproom, Boston",
			ChapterID:   "ch-boston",
			Category:    "social",
			Status:      event.StatusActive,
			StartDate:   now.AddDate(0, 0, 10),
			Capacity:    60,
			CreatedAt:   now.AddDate(0, -1, 0),
		},
		{
			ID:          "evt-003",
			Title:       "Career Pivot Workshop",
			Description: "Panel and breakout sessions on changing industries.",
			Location:    "Online",
			Category:    "career",
			Tags:        []string{"career", "remote"},
			Status:      event.StatusDraft,
			StartDate:   now.AddDate(0, 2, 0),
			CreatedAt:   now.AddDate(0, 0, -7),
		},
	}
}
