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

// PopularityService tallies weapon usage across a scope and turns the
// counts into ranked share buckets
type PopularityService struct {
	log     logger.Logger
	repo    repository.RankingStore
	catalog *catalog.Catalog
}

// NewPopularityService creates a new PopularityService
func NewPopularityService(log logger.Logger, repo repository.RankingStore, cat *catalog.Catalog) *PopularityService {
	return &PopularityService{
		log:     log,
		repo:    repo,
		catalog: cat,
	}
}

// Aggregate counts placements per classification value of dim within
// the scope, ranks values by descending count and computes each
// value's percentage share. An empty scope yields an empty bucket
// list.
func (s *PopularityService) Aggregate(ctx context.Context, dim models.Dimension, scope models.ScopeFilter) ([]models.PopularityBucket, error) {
	if _, ok := models.ParseDimension(string(dim)); !ok {
		return nil, errors.InvalidArgumentf("unknown classification dimension %q", dim)
	}

	records, err := s.repo.FetchRankings(ctx, scope)
	if err != nil {
		return nil, errors.Upstream("ranking fetch failed", err)
	}

	counts := make(map[int]int)
	total := 0
	for _, rec := range records {
		value, ok := s.catalog.Classify(rec.WeaponID, dim)
		if !ok {
			s.log.Warn("unclassifiable weapon", "weapon_id", rec.WeaponID, "dimension", dim)
			continue
		}
		counts[value]++
		total++
	}
	if total == 0 {
		return []models.PopularityBucket{}, nil
	}

	return rankCounts(counts, total), nil
}

// rankCounts orders counts by (count desc, value asc) and assigns
// positional ranks and percentage shares. The tie-break is fixed so
// output is reproducible.
func rankCounts(counts map[int]int, total int) []models.PopularityBucket {
	buckets := make([]models.PopularityBucket, 0, len(counts))
	for value, count := range counts {
		buckets = append(buckets, models.PopularityBucket{Value: value, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Value < buckets[j].Value
	})
	for i := range buckets {
		buckets[i].Rank = i + 1
		if total > 0 {
			buckets[i].Percentage = 100 * float64(buckets[i].Count) / float64(total)
		}
	}
	return buckets
}
