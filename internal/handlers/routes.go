package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	allowedOrigins := []string{"*"}
	if h.FrontendOrigin != "" {
		allowedOrigins = []string{h.FrontendOrigin}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health and reference data
	r.Get("/", h.handleIndex)
	r.Get("/data", h.handleData)
	r.Get("/stats", h.handleStats)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Players
	r.Get("/players/search", h.handlePlayerSearch)
	r.Get("/players/{playerID}/known_names", h.handleKnownNames)
	r.Get("/players/{playerID}/qr", h.handlePlayerQR)

	// Rankings
	r.Get("/rankings/x/{year}/{month}/{ruleKey}", h.handleXRankings)
	r.Get("/rankings/league/search", h.handleLeagueSearch)
	r.Get("/rankings/league/{startTime}/{groupType}", h.handleLeagueWindow)
	r.Get("/rankings/splatfest/{region}/{eventID}", h.handleSplatfestRankings)

	// Weapon popularity
	r.Get("/weapons/{dimension}/splatfest/{region}/{eventID}", h.handleSplatfestPopularity)
	r.Get("/weapons/{dimension}/{kind}/{year}/{month}", h.handleWeaponPopularity)
	r.Get("/weapons/{dimension}/{kind}/{year}/{month}/{ruleKey}", h.handleWeaponPopularity)

	// Trends
	r.Get("/trends/{dimension}/x", h.handleTrends)
	r.Get("/trends/{dimension}/x/{ruleKey}", h.handleTrends)

	// Records snapshot
	r.Get("/records", h.handleRecords)

	return r
}
