package mock

import (
	"context"
	"time"

	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.FetchRankingsError = errors.New("database error")
//	svc := services.NewLeaderboardService(log, mockRepo, cat)
//	_, err := svc.XWeaponTopK(ctx, ...)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Ranking Errors =====
	FetchRankingsError      error
	FetchGroupRecordsError  error
	LatestXRankingTimeError error
	GetLeagueScheduleError  error

	// ===== Name Errors =====
	LatestNameError    error
	KnownNamesError    error
	SearchPlayersError error

	// ===== Weapon Errors =====
	ListWeaponsError  error
	UpsertWeaponError error

	// ===== Writer Errors =====
	InsertXRankingError         error
	InsertLeagueRankingError    error
	InsertSplatfestRankingError error
	UpsertLeagueScheduleError   error
	UpsertPlayerNameError       error

	// ===== Stats Errors =====
	StatsError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Ranking Methods =====

func (m *Repository) FetchRankings(ctx context.Context, filter models.ScopeFilter) ([]models.RankingRecord, error) {
	if m.FetchRankingsError != nil {
		return nil, m.FetchRankingsError
	}
	return m.FullRepository.FetchRankings(ctx, filter)
}

func (m *Repository) FetchGroupRecords(ctx context.Context, groupID string, startTime time.Time) ([]models.RankingRecord, error) {
	if m.FetchGroupRecordsError != nil {
		return nil, m.FetchGroupRecordsError
	}
	return m.FullRepository.FetchGroupRecords(ctx, groupID, startTime)
}

func (m *Repository) LatestXRankingTime(ctx context.Context) (time.Time, error) {
	if m.LatestXRankingTimeError != nil {
		return time.Time{}, m.LatestXRankingTimeError
	}
	return m.FullRepository.LatestXRankingTime(ctx)
}

func (m *Repository) GetLeagueSchedule(ctx context.Context, startTime time.Time) (*models.LeagueSchedule, error) {
	if m.GetLeagueScheduleError != nil {
		return nil, m.GetLeagueScheduleError
	}
	return m.FullRepository.GetLeagueSchedule(ctx, startTime)
}

// ===== Name Methods =====

func (m *Repository) LatestName(ctx context.Context, playerID string) (*models.PlayerName, error) {
	if m.LatestNameError != nil {
		return nil, m.LatestNameError
	}
	return m.FullRepository.LatestName(ctx, playerID)
}

func (m *Repository) KnownNames(ctx context.Context, playerID string) ([]models.PlayerName, error) {
	if m.KnownNamesError != nil {
		return nil, m.KnownNamesError
	}
	return m.FullRepository.KnownNames(ctx, playerID)
}

func (m *Repository) SearchPlayers(ctx context.Context, name string, limit int) ([]models.PlayerName, error) {
	if m.SearchPlayersError != nil {
		return nil, m.SearchPlayersError
	}
	return m.FullRepository.SearchPlayers(ctx, name, limit)
}

// ===== Weapon Methods =====

func (m *Repository) ListWeapons(ctx context.Context) ([]models.Weapon, error) {
	if m.ListWeaponsError != nil {
		return nil, m.ListWeaponsError
	}
	return m.FullRepository.ListWeapons(ctx)
}

func (m *Repository) UpsertWeapon(ctx context.Context, w models.Weapon) error {
	if m.UpsertWeaponError != nil {
		return m.UpsertWeaponError
	}
	return m.FullRepository.UpsertWeapon(ctx, w)
}

// ===== Writer Methods =====

func (m *Repository) InsertXRanking(ctx context.Context, rec models.RankingRecord) error {
	if m.InsertXRankingError != nil {
		return m.InsertXRankingError
	}
	return m.FullRepository.InsertXRanking(ctx, rec)
}

func (m *Repository) InsertLeagueRanking(ctx context.Context, rec models.RankingRecord) error {
	if m.InsertLeagueRankingError != nil {
		return m.InsertLeagueRankingError
	}
	return m.FullRepository.InsertLeagueRanking(ctx, rec)
}

func (m *Repository) InsertSplatfestRanking(ctx context.Context, region string, splatfestID int, rec models.RankingRecord) error {
	if m.InsertSplatfestRankingError != nil {
		return m.InsertSplatfestRankingError
	}
	return m.FullRepository.InsertSplatfestRanking(ctx, region, splatfestID, rec)
}

func (m *Repository) UpsertLeagueSchedule(ctx context.Context, sched models.LeagueSchedule) error {
	if m.UpsertLeagueScheduleError != nil {
		return m.UpsertLeagueScheduleError
	}
	return m.FullRepository.UpsertLeagueSchedule(ctx, sched)
}

func (m *Repository) UpsertPlayerName(ctx context.Context, name models.PlayerName) error {
	if m.UpsertPlayerNameError != nil {
		return m.UpsertPlayerNameError
	}
	return m.FullRepository.UpsertPlayerName(ctx, name)
}

// ===== Stats Methods =====

func (m *Repository) Stats(ctx context.Context) (map[string]interface{}, error) {
	if m.StatsError != nil {
		return nil, m.StatsError
	}
	return m.FullRepository.Stats(ctx)
}
