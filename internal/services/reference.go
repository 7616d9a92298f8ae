package services

import (
	"context"

	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
	"github.com/abrezinsky/inkstats/pkg/statink"
)

// ReferenceService syncs the static weapon reference table from the
// stat.ink catalog
type ReferenceService struct {
	log    logger.Logger
	repo   repository.WeaponStore
	client statink.Client
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(log logger.Logger, repo repository.WeaponStore, client statink.Client) *ReferenceService {
	return &ReferenceService{
		log:    log,
		repo:   repo,
		client: client,
	}
}

// ReferenceSyncResult summarizes a weapon catalog sync
type ReferenceSyncResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
}

// SyncWeapons fetches the upstream weapon catalog and upserts every
// resolvable entry into the local reference table. Entries with an
// unknown sub, special or class key are skipped with a warning rather
// than failing the whole sync.
func (s *ReferenceService) SyncWeapons(ctx context.Context) (*ReferenceSyncResult, error) {
	weapons, err := s.client.FetchWeapons(ctx)
	if err != nil {
		return nil, errors.Upstream("weapon catalog fetch failed", err)
	}

	idByKey := make(map[string]int, len(weapons))
	for _, w := range weapons {
		idByKey[w.Key] = w.Splatnet
	}

	result := &ReferenceSyncResult{}
	for _, w := range weapons {
		row, ok := s.toWeaponRow(w, idByKey)
		if !ok {
			result.Skipped++
			continue
		}
		if err := s.repo.UpsertWeapon(ctx, row); err != nil {
			return nil, errors.Upstream("weapon upsert failed", err)
		}
		result.Synced++
	}

	s.log.Info("weapon catalog synced", "synced", result.Synced, "skipped", result.Skipped)
	return result, nil
}

func (s *ReferenceService) toWeaponRow(w statink.Weapon, idByKey map[string]int) (models.Weapon, bool) {
	subID, ok := catalog.SubWeaponByKey(w.Sub.Key)
	if !ok {
		s.log.Warn("unknown sub weapon key", "weapon", w.Key, "sub", w.Sub.Key)
		return models.Weapon{}, false
	}
	specialID, ok := catalog.SpecialWeaponByKey(w.Special.Key)
	if !ok {
		s.log.Warn("unknown special weapon key", "weapon", w.Key, "special", w.Special.Key)
		return models.Weapon{}, false
	}
	classID, ok := catalog.WeaponClassByKey(normalizeClassKey(w.Type.Key))
	if !ok {
		s.log.Warn("unknown weapon class key", "weapon", w.Key, "class", w.Type.Key)
		return models.Weapon{}, false
	}

	mainRef := w.Splatnet
	if id, ok := idByKey[w.MainRef]; ok {
		mainRef = id
	}

	row := models.Weapon{
		ID:            w.Splatnet,
		Key:           w.Key,
		SubWeaponID:   subID,
		SpecialID:     specialID,
		MainReference: mainRef,
		ClassID:       classID,
	}
	if w.ReskinOf != nil {
		if id, ok := idByKey[*w.ReskinOf]; ok {
			row.ReskinOf = &id
		} else {
			s.log.Warn("unresolvable reskin reference", "weapon", w.Key, "reskin_of", *w.ReskinOf)
		}
	}
	return row, true
}

// normalizeClassKey folds upstream class keys that our class table
// does not distinguish. Semi-automatic shooters are plain shooters
// here.
func normalizeClassKey(key string) string {
	if key == "reelgun" {
		return "shooter"
	}
	return key
}
