package handlers

import (
	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/repository"
	"github.com/abrezinsky/inkstats/internal/services"
	"github.com/abrezinsky/inkstats/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Leaderboard    services.LeaderboardServicer
	Roster         services.RosterServicer
	Popularity     services.PopularityServicer
	Trends         services.TrendServicer
	Snapshot       services.SnapshotServicer
	Player         services.PlayerServicer
	Stats          repository.StatsStore
	Catalog        *catalog.Catalog
	Hub            *websocket.Hub
	Log            HTTPLogger
	FrontendOrigin string
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	leaderboard services.LeaderboardServicer,
	roster services.RosterServicer,
	popularity services.PopularityServicer,
	trends services.TrendServicer,
	snapshot services.SnapshotServicer,
	player services.PlayerServicer,
	stats repository.StatsStore,
	cat *catalog.Catalog,
	hub *websocket.Hub,
	log HTTPLogger,
	frontendOrigin string,
) *Handlers {
	return &Handlers{
		Leaderboard:    leaderboard,
		Roster:         roster,
		Popularity:     popularity,
		Trends:         trends,
		Snapshot:       snapshot,
		Player:         player,
		Stats:          stats,
		Catalog:        cat,
		Hub:            hub,
		Log:            log,
		FrontendOrigin: frontendOrigin,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without a websocket hub
func NewForTesting(
	leaderboard services.LeaderboardServicer,
	roster services.RosterServicer,
	popularity services.PopularityServicer,
	trends services.TrendServicer,
	snapshot services.SnapshotServicer,
	player services.PlayerServicer,
	stats repository.StatsStore,
	cat *catalog.Catalog,
) *Handlers {
	return &Handlers{
		Leaderboard: leaderboard,
		Roster:      roster,
		Popularity:  popularity,
		Trends:      trends,
		Snapshot:    snapshot,
		Player:      player,
		Stats:       stats,
		Catalog:     cat,
		Log:         NoopHTTPLogger{},
	}
}
