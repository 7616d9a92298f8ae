package repository

import (
	"context"
	"time"

	"github.com/abrezinsky/inkstats/internal/models"
)

// RankingStore defines read access to competitive placement data
type RankingStore interface {
	FetchRankings(ctx context.Context, filter models.ScopeFilter) ([]models.RankingRecord, error)
	FetchGroupRecords(ctx context.Context, groupID string, startTime time.Time) ([]models.RankingRecord, error)
	LatestXRankingTime(ctx context.Context) (time.Time, error)
	GetLeagueSchedule(ctx context.Context, startTime time.Time) (*models.LeagueSchedule, error)
}

// NameStore defines access to the player name directory
type NameStore interface {
	LatestName(ctx context.Context, playerID string) (*models.PlayerName, error)
	KnownNames(ctx context.Context, playerID string) ([]models.PlayerName, error)
	SearchPlayers(ctx context.Context, name string, limit int) ([]models.PlayerName, error)
}

// WeaponStore defines access to the weapon reference table
type WeaponStore interface {
	ListWeapons(ctx context.Context) ([]models.Weapon, error)
	UpsertWeapon(ctx context.Context, w models.Weapon) error
}

// RecordWriter defines the ingest operations used by reference sync
type RecordWriter interface {
	InsertXRanking(ctx context.Context, rec models.RankingRecord) error
	InsertLeagueRanking(ctx context.Context, rec models.RankingRecord) error
	InsertSplatfestRanking(ctx context.Context, region string, splatfestID int, rec models.RankingRecord) error
	UpsertLeagueSchedule(ctx context.Context, sched models.LeagueSchedule) error
	UpsertPlayerName(ctx context.Context, name models.PlayerName) error
}

// StatsStore defines aggregate store statistics
type StatsStore interface {
	Stats(ctx context.Context) (map[string]interface{}, error)
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	RankingStore
	NameStore
	WeaponStore
	RecordWriter
	StatsStore
	Close() error
	Ping(ctx context.Context) error
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
