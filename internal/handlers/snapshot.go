package handlers

import (
	"net/http"
)

// handleIndex is the health endpoint
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondOK(w, map[string]string{"status": "ok"})
}

// handleRecords returns the composite record snapshot for the latest
// ranked period
func (h *Handlers) handleRecords(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Snapshot.Build(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, snapshot)
}

// handleStats returns row counts and the latest known ranked period
func (h *Handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, stats)
}
