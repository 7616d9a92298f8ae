package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handlePlayerSearch finds players by name substring
func (h *Handlers) handlePlayerSearch(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntQuery(r, "limit", 50)
	if err != nil {
		respondError(w, err)
		return
	}

	names, err := h.Player.Search(r.Context(), r.URL.Query().Get("name"), limit)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, names)
}

// handleKnownNames returns every name a player has been seen under
func (h *Handlers) handleKnownNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.Player.KnownNames(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, names)
}

// handlePlayerQR serves a QR code PNG linking to the player's page
func (h *Handlers) handlePlayerQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Player.ShareQR(chi.URLParam(r, "playerID"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
