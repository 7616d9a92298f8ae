package services

import (
	"context"
	"time"

	"github.com/abrezinsky/inkstats/internal/models"
)

// LeaderboardServicer defines the interface for leaderboard operations
type LeaderboardServicer interface {
	XTopK(ctx context.Context, ruleID int, period *models.Period, k int) ([]models.RankedEntry, error)
	XWeaponTopK(ctx context.Context, ruleID, weaponID int, period *models.Period, k int) ([]models.RankedEntry, error)
	SplatfestWeaponTopK(ctx context.Context, region string, splatfestID, weaponID, k int) ([]models.RankedEntry, error)
	LeagueTopK(ctx context.Context, ruleID int, groupType models.GroupType, k int) ([]models.GroupRoster, error)
	LeagueWindowTopK(ctx context.Context, window time.Time, groupType models.GroupType, k int) ([]models.GroupRoster, error)
	LeagueWeaponTopK(ctx context.Context, ruleID, weaponID int, groupType models.GroupType, k int) ([]models.GroupRoster, error)
	LeagueWeaponSetTopK(ctx context.Context, ruleID int, weaponIDs []int, groupType models.GroupType, k int) ([]models.GroupRoster, error)
	TopPlayersForPeriod(ctx context.Context, ruleID int, period models.Period, weaponIDs []int) (map[int]*models.RankedEntry, error)
	AllTimeWeaponRecords(ctx context.Context) ([]models.AllTimeWeaponRecord, error)
}

// RosterServicer defines the interface for roster assembly
type RosterServicer interface {
	ResolveRoster(ctx context.Context, groupID string, startTime time.Time) (*models.GroupRoster, error)
}

// PopularityServicer defines the interface for popularity aggregation
type PopularityServicer interface {
	Aggregate(ctx context.Context, dim models.Dimension, scope models.ScopeFilter) ([]models.PopularityBucket, error)
}

// TrendServicer defines the interface for trend comparison
type TrendServicer interface {
	Compare(ctx context.Context, dim models.Dimension, scope models.ScopeFilter, previous, current models.Period) ([]models.TrendEntry, error)
}

// SnapshotServicer defines the interface for composite snapshot builds
type SnapshotServicer interface {
	Build(ctx context.Context) (*models.Snapshot, error)
	LatestPeriod(ctx context.Context) (models.Period, error)
}

// PlayerServicer defines the interface for player directory operations
type PlayerServicer interface {
	Search(ctx context.Context, name string, limit int) ([]models.PlayerName, error)
	KnownNames(ctx context.Context, playerID string) ([]models.PlayerName, error)
	ShareQR(playerID string) ([]byte, error)
}
