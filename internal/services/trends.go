package services

import (
	"context"
	"sort"

	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
)

// TrendService compares usage popularity between two calendar months
type TrendService struct {
	log     logger.Logger
	repo    repository.RankingStore
	catalog *catalog.Catalog
}

// NewTrendService creates a new TrendService
func NewTrendService(log logger.Logger, repo repository.RankingStore, cat *catalog.Catalog) *TrendService {
	return &TrendService{
		log:     log,
		repo:    repo,
		catalog: cat,
	}
}

// Compare tallies the dimension's full value universe for two months
// and pairs the per-month counts and ranks. Values unused in a month
// still appear with count 0, so the universe size is identical on both
// sides. scope carries every constraint except the period. The months
// must be strictly ordered.
func (s *TrendService) Compare(ctx context.Context, dim models.Dimension, scope models.ScopeFilter, previous, current models.Period) ([]models.TrendEntry, error) {
	if _, ok := models.ParseDimension(string(dim)); !ok {
		return nil, errors.InvalidArgumentf("unknown classification dimension %q", dim)
	}
	if !previous.Before(current) {
		return nil, errors.InvalidArgumentf("previous period %s must be earlier than current period %s", previous, current)
	}

	universe := s.catalog.Universe(dim)

	prevRanks, err := s.periodRanks(ctx, dim, scope, previous, universe)
	if err != nil {
		return nil, err
	}
	curRanks, err := s.periodRanks(ctx, dim, scope, current, universe)
	if err != nil {
		return nil, err
	}

	entries := make([]models.TrendEntry, 0, len(universe))
	for _, value := range universe {
		entries = append(entries, models.TrendEntry{
			Value:         value,
			PreviousCount: prevRanks[value].count,
			PreviousRank:  prevRanks[value].rank,
			CurrentCount:  curRanks[value].count,
			CurrentRank:   curRanks[value].rank,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CurrentCount != entries[j].CurrentCount {
			return entries[i].CurrentCount > entries[j].CurrentCount
		}
		return entries[i].Value < entries[j].Value
	})
	return entries, nil
}

type countRank struct {
	count int
	rank  int
}

// periodRanks counts one month's placements per classification value
// over the full universe and assigns positional ranks by
// (count desc, value asc)
func (s *TrendService) periodRanks(ctx context.Context, dim models.Dimension, scope models.ScopeFilter, period models.Period, universe []int) (map[int]countRank, error) {
	scope.Period = &period
	scope.Start = nil
	scope.End = nil

	records, err := s.repo.FetchRankings(ctx, scope)
	if err != nil {
		return nil, errors.Upstream("ranking fetch failed", err)
	}

	counts := make(map[int]int, len(universe))
	for _, value := range universe {
		counts[value] = 0
	}
	for _, rec := range records {
		value, ok := s.catalog.Classify(rec.WeaponID, dim)
		if !ok {
			s.log.Warn("unclassifiable weapon", "weapon_id", rec.WeaponID, "dimension", dim)
			continue
		}
		if _, known := counts[value]; !known {
			s.log.Warn("classification value outside universe", "value", value, "dimension", dim)
			continue
		}
		counts[value]++
	}

	ordered := make([]int, len(universe))
	copy(ordered, universe)
	sort.Slice(ordered, func(i, j int) bool {
		if counts[ordered[i]] != counts[ordered[j]] {
			return counts[ordered[i]] > counts[ordered[j]]
		}
		return ordered[i] < ordered[j]
	})

	ranks := make(map[int]countRank, len(universe))
	for i, value := range ordered {
		ranks[value] = countRank{count: counts[value], rank: i + 1}
	}
	return ranks, nil
}
