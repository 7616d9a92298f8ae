package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/models"
)

// handleXRankings returns the monthly X leaderboard for a rule. An
// optional weapon_id query restricts results to that weapon's
// equivalence class; an optional limit query truncates the list.
func (h *Handlers) handleXRankings(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	ruleID, ok := catalog.RuleByKey(chi.URLParam(r, "ruleKey"))
	if !ok {
		respondError(w, BadRequest("Unknown rule "+chi.URLParam(r, "ruleKey")))
		return
	}

	limit, err := parseIntQuery(r, "limit", -1)
	if err != nil {
		respondError(w, err)
		return
	}

	var entries []models.RankedEntry
	if raw := r.URL.Query().Get("weapon_id"); raw != "" {
		weaponID, convErr := strconv.Atoi(raw)
		if convErr != nil {
			respondError(w, BadRequest("Invalid weapon_id parameter"))
			return
		}
		entries, err = h.Leaderboard.XWeaponTopK(r.Context(), ruleID, weaponID, &period, limit)
	} else {
		entries, err = h.Leaderboard.XTopK(r.Context(), ruleID, &period, limit)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, entries)
}

// handleSplatfestRankings returns the top placements of one splatfest
// event for a weapon's equivalence class
func (h *Handlers) handleSplatfestRankings(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")
	eventID, err := parseIntParam(r, "eventID")
	if err != nil {
		respondError(w, err)
		return
	}

	raw := r.URL.Query().Get("weapon_id")
	if raw == "" {
		respondError(w, BadRequest("Missing weapon_id parameter"))
		return
	}
	weaponID, convErr := strconv.Atoi(raw)
	if convErr != nil {
		respondError(w, BadRequest("Invalid weapon_id parameter"))
		return
	}

	limit, err := parseIntQuery(r, "limit", -1)
	if err != nil {
		respondError(w, err)
		return
	}

	entries, err := h.Leaderboard.SplatfestWeaponTopK(r.Context(), region, eventID, weaponID, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, entries)
}

// handleLeagueWindow returns the standings of one league rotation
// window, rosters resolved. The startTime parameter is unix seconds.
func (h *Handlers) handleLeagueWindow(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "startTime")
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, BadRequest("Invalid startTime parameter"))
		return
	}

	groupType, ok := models.ParseGroupType(chi.URLParam(r, "groupType"))
	if !ok {
		respondError(w, BadRequest("Unknown group type "+chi.URLParam(r, "groupType")))
		return
	}

	limit, lerr := parseIntQuery(r, "limit", -1)
	if lerr != nil {
		respondError(w, lerr)
		return
	}

	rosters, err := h.Leaderboard.LeagueWindowTopK(r.Context(), time.Unix(secs, 0).UTC(), groupType, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, rosters)
}

// handleLeagueSearch returns the top league placements filtered by
// weapon usage. A weapon_id query matches any member's weapon; a
// weapons query (comma-separated ids) matches the full composition up
// to reskin equivalence.
func (h *Handlers) handleLeagueSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	groupType, ok := models.ParseGroupType(q.Get("group_type"))
	if !ok {
		respondError(w, BadRequest("Missing or unknown group_type parameter"))
		return
	}

	ruleID := 0
	if ruleKey := q.Get("rule"); ruleKey != "" {
		ruleID, ok = catalog.RuleByKey(ruleKey)
		if !ok {
			respondError(w, BadRequest("Unknown rule "+ruleKey))
			return
		}
	}

	k, err := parseIntQuery(r, "k", 10)
	if err != nil {
		respondError(w, err)
		return
	}

	var rosters []models.GroupRoster
	switch {
	case q.Get("weapons") != "":
		weaponIDs, convErr := parseIDList(q.Get("weapons"))
		if convErr != nil {
			respondError(w, convErr)
			return
		}
		rosters, err = h.Leaderboard.LeagueWeaponSetTopK(r.Context(), ruleID, weaponIDs, groupType, k)
	case q.Get("weapon_id") != "":
		weaponID, convErr := strconv.Atoi(q.Get("weapon_id"))
		if convErr != nil {
			respondError(w, BadRequest("Invalid weapon_id parameter"))
			return
		}
		rosters, err = h.Leaderboard.LeagueWeaponTopK(r.Context(), ruleID, weaponID, groupType, k)
	default:
		respondError(w, BadRequest("Either weapon_id or weapons is required"))
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, rosters)
}

// parsePeriodParams builds a Period from year/month URL parameters
func parsePeriodParams(r *http.Request) (models.Period, error) {
	year, err := parseIntParam(r, "year")
	if err != nil {
		return models.Period{}, err
	}
	month, err := parseIntParam(r, "month")
	if err != nil {
		return models.Period{}, err
	}
	if month < 1 || month > 12 {
		return models.Period{}, BadRequest("Invalid month parameter")
	}
	return models.Period{Year: year, Month: time.Month(month)}, nil
}

// parseIDList parses a comma-separated list of integer ids
func parseIDList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, BadRequest("Invalid weapons parameter")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
