package services

import (
	"context"
	stderrors "errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
)

const (
	snapshotXTopK      = 10
	snapshotLeagueTopK = 10
)

// Broadcaster notifies connected clients about snapshot refreshes
type Broadcaster interface {
	BroadcastSnapshotRefreshed(period string)
}

// SnapshotService builds the composite record view: the top individual
// placements per rule, the top rosters per group type and rule, and
// the all-time best placement per weapon. Sub-queries fan out
// concurrently and the first failure cancels the rest.
type SnapshotService struct {
	log         logger.Logger
	repo        repository.RankingStore
	leaderboard LeaderboardServicer
	broadcaster Broadcaster

	mu      sync.Mutex
	memoKey string
	allTime []models.AllTimeWeaponRecord
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(log logger.Logger, repo repository.RankingStore, leaderboard LeaderboardServicer) *SnapshotService {
	return &SnapshotService{
		log:         log,
		repo:        repo,
		leaderboard: leaderboard,
	}
}

// SetBroadcaster wires the refresh notification target
func (s *SnapshotService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// LatestPeriod returns the calendar month of the most recent x window
func (s *SnapshotService) LatestPeriod(ctx context.Context) (models.Period, error) {
	latest, err := s.repo.LatestXRankingTime(ctx)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return models.Period{}, errors.NotFound("no ranking windows ingested yet")
		}
		return models.Period{}, errors.Upstream("latest window lookup failed", err)
	}
	return models.PeriodOf(latest), nil
}

// Build assembles a full snapshot for the latest ingested period. The
// all-time table is memoized per period key since a fully elapsed
// period never changes; the per-rule leaderboards always target the
// latest window and are recomputed on every call. A failed build
// caches nothing.
func (s *SnapshotService) Build(ctx context.Context) (*models.Snapshot, error) {
	period, err := s.LatestPeriod(ctx)
	if err != nil {
		return nil, err
	}
	periodKey := period.String()

	snapshot := &models.Snapshot{
		Period:        periodKey,
		XRecords:      make(map[string][]models.RankedEntry, len(catalog.RankedRules)),
		LeagueRecords: make(map[string]map[string][]models.GroupRoster, len(models.GroupTypes)),
	}
	for _, gt := range models.GroupTypes {
		snapshot.LeagueRecords[gt.Key()] = make(map[string][]models.GroupRoster, len(catalog.RankedRules))
	}

	var xMu, leagueMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, rule := range catalog.RankedRules {
		rule := rule
		g.Go(func() error {
			entries, err := s.leaderboard.XTopK(ctx, rule.ID, &period, snapshotXTopK)
			if err != nil {
				return err
			}
			xMu.Lock()
			snapshot.XRecords[rule.Key] = entries
			xMu.Unlock()
			return nil
		})

		for _, gt := range models.GroupTypes {
			gt := gt
			g.Go(func() error {
				rosters, err := s.leaderboard.LeagueTopK(ctx, rule.ID, gt, snapshotLeagueTopK)
				if err != nil {
					return err
				}
				leagueMu.Lock()
				snapshot.LeagueRecords[gt.Key()][rule.Key] = rosters
				leagueMu.Unlock()
				return nil
			})
		}
	}

	var allTime []models.AllTimeWeaponRecord
	memoHit := s.memoized(periodKey, &allTime)
	if !memoHit {
		g.Go(func() error {
			records, err := s.leaderboard.AllTimeWeaponRecords(ctx)
			if err != nil {
				return err
			}
			allTime = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !memoHit {
		s.mu.Lock()
		s.memoKey = periodKey
		s.allTime = allTime
		s.mu.Unlock()
	}
	snapshot.WeaponRecords = allTime

	if s.broadcaster != nil {
		s.broadcaster.BroadcastSnapshotRefreshed(periodKey)
	}
	return snapshot, nil
}

func (s *SnapshotService) memoized(periodKey string, out *[]models.AllTimeWeaponRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memoKey != periodKey || s.allTime == nil {
		return false
	}
	*out = s.allTime
	return true
}
