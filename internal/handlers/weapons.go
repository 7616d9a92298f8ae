package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/models"
)

// DataResponse is the static reference payload served by /data
type DataResponse struct {
	Weapons        []models.Weapon `json:"weapons"`
	RankedRules    []catalog.Ref   `json:"ranked_rules"`
	WeaponClasses  []catalog.Ref   `json:"weapon_classes"`
	SubWeapons     []catalog.Ref   `json:"sub_weapons"`
	SpecialWeapons []catalog.Ref   `json:"special_weapons"`
	Stages         []catalog.Ref   `json:"stages"`
}

// handleData returns the weapon catalog and the fixed reference tables
func (h *Handlers) handleData(w http.ResponseWriter, r *http.Request) {
	respondOK(w, DataResponse{
		Weapons:        h.Catalog.Weapons(),
		RankedRules:    catalog.RankedRules,
		WeaponClasses:  catalog.WeaponClasses,
		SubWeapons:     catalog.SubWeapons,
		SpecialWeapons: catalog.SpecialWeapons,
		Stages:         catalog.Stages,
	})
}

// handleWeaponPopularity returns usage shares for one classification
// dimension within a monthly scope. The optional ruleKey parameter
// restricts the scope to one rule.
func (h *Handlers) handleWeaponPopularity(w http.ResponseWriter, r *http.Request) {
	dim := models.Dimension(chi.URLParam(r, "dimension"))

	kind, ok := models.ParseRankingKind(chi.URLParam(r, "kind"))
	if !ok {
		respondError(w, BadRequest("Unknown ranking kind "+chi.URLParam(r, "kind")))
		return
	}

	period, err := parsePeriodParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	scope := models.ScopeFilter{Kind: kind, Period: &period}
	if ruleKey := chi.URLParam(r, "ruleKey"); ruleKey != "" {
		scope.RuleID, ok = catalog.RuleByKey(ruleKey)
		if !ok {
			respondError(w, BadRequest("Unknown rule "+ruleKey))
			return
		}
	}

	buckets, err := h.Popularity.Aggregate(r.Context(), dim, scope)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, buckets)
}

// handleSplatfestPopularity returns usage shares for one splatfest
// event, scoped by region and event id
func (h *Handlers) handleSplatfestPopularity(w http.ResponseWriter, r *http.Request) {
	dim := models.Dimension(chi.URLParam(r, "dimension"))

	region := chi.URLParam(r, "region")
	eventID, err := parseIntParam(r, "eventID")
	if err != nil {
		respondError(w, err)
		return
	}

	scope := models.ScopeFilter{
		Kind:        models.KindSplatfest,
		Region:      region,
		SplatfestID: eventID,
	}

	buckets, err := h.Popularity.Aggregate(r.Context(), dim, scope)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, buckets)
}

// handleTrends compares usage between two monthly periods over the
// full dimension universe
func (h *Handlers) handleTrends(w http.ResponseWriter, r *http.Request) {
	dim := models.Dimension(chi.URLParam(r, "dimension"))

	previous, err := models.ParsePeriod(r.URL.Query().Get("previous_month"))
	if err != nil {
		respondError(w, BadRequest("Invalid previous_month parameter"))
		return
	}
	current, err := models.ParsePeriod(r.URL.Query().Get("current_month"))
	if err != nil {
		respondError(w, BadRequest("Invalid current_month parameter"))
		return
	}

	scope := models.ScopeFilter{Kind: models.KindX}
	if ruleKey := chi.URLParam(r, "ruleKey"); ruleKey != "" {
		var ok bool
		scope.RuleID, ok = catalog.RuleByKey(ruleKey)
		if !ok {
			respondError(w, BadRequest("Unknown rule "+ruleKey))
			return
		}
	}

	entries, err := h.Trends.Compare(r.Context(), dim, scope, previous, current)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, entries)
}
