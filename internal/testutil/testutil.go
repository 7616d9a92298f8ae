package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// Month returns the UTC start of a calendar month
func Month(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// SeedWeapon inserts a weapon reference row
func SeedWeapon(t *testing.T, repo *repository.Repository, w models.Weapon) {
	t.Helper()
	if err := repo.UpsertWeapon(context.Background(), w); err != nil {
		t.Fatalf("failed to seed weapon %d: %v", w.ID, err)
	}
}

// SeedXRanking inserts one x placement row
func SeedXRanking(t *testing.T, repo *repository.Repository, rec models.RankingRecord) {
	t.Helper()
	if err := repo.InsertXRanking(context.Background(), rec); err != nil {
		t.Fatalf("failed to seed x ranking for %s: %v", rec.PlayerID, err)
	}
}

// SeedLeagueRanking inserts one league placement row
func SeedLeagueRanking(t *testing.T, repo *repository.Repository, rec models.RankingRecord) {
	t.Helper()
	if err := repo.InsertLeagueRanking(context.Background(), rec); err != nil {
		t.Fatalf("failed to seed league ranking for %s: %v", rec.PlayerID, err)
	}
}

// SeedPlayerName inserts one player name sighting
func SeedPlayerName(t *testing.T, repo *repository.Repository, playerID, name string, lastUsed time.Time) {
	t.Helper()
	err := repo.UpsertPlayerName(context.Background(), models.PlayerName{
		PlayerID:   playerID,
		PlayerName: name,
		LastUsed:   lastUsed,
	})
	if err != nil {
		t.Fatalf("failed to seed player name %s: %v", name, err)
	}
}
