package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/handlers"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/repository"
	"github.com/abrezinsky/inkstats/internal/services"
	"github.com/abrezinsky/inkstats/internal/websocket"
	"github.com/abrezinsky/inkstats/pkg/statink"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	repo     *repository.Repository
}

// New creates and initializes a new application instance. When
// syncReference is set, the weapon table is refreshed from stat.ink
// before the equivalence index is built.
func New(log logger.Logger, dbPath, frontendOrigin string, statinkClient statink.Client, syncReference bool) (*App, error) {
	repo, err := repository.New(dbPath)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	if syncReference {
		reference := services.NewReferenceService(log, repo, statinkClient)
		result, err := reference.SyncWeapons(ctx)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("reference sync failed: %w", err)
		}
		log.Info("Weapon reference synced", "synced", result.Synced, "skipped", result.Skipped)
	}

	// The equivalence index is built once from the weapons table;
	// ranking queries never touch it again.
	weapons, err := repo.ListWeapons(ctx)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to load weapon table: %w", err)
	}
	if len(weapons) == 0 {
		log.Warn("Weapon table is empty, run with -sync to populate it")
	}
	cat := catalog.New(weapons)

	// Initialize services
	rosterService := services.NewRosterService(log, repo)
	leaderboardService := services.NewLeaderboardService(log, repo, cat, rosterService)
	popularityService := services.NewPopularityService(log, repo, cat)
	trendService := services.NewTrendService(log, repo, cat)
	snapshotService := services.NewSnapshotService(log, repo, leaderboardService)
	playerService := services.NewPlayerService(log, repo, frontendOrigin)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, snapshotService)
	hub.Start()
	snapshotService.SetBroadcaster(hub)

	h := handlers.New(
		leaderboardService,
		rosterService,
		popularityService,
		trendService,
		snapshotService,
		playerService,
		repo,
		cat,
		hub,
		log,
		frontendOrigin,
	)

	return &App{
		log:      log,
		handlers: h,
		repo:     repo,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close releases app resources
func (a *App) Close() {
	if a.repo != nil {
		a.repo.Close()
	}
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	a.log.Info("Server starting", "addr", addr)
	return http.ListenAndServe(addr, a.Router())
}
