package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/abrezinsky/inkstats/internal/models"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Repository{db: db}, mock
}

// TestFetchRankings_QueryError tests database error propagation
func TestFetchRankings_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM x_rankings").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.FetchRankings(ctx, models.ScopeFilter{Kind: models.KindX})
	if err == nil {
		t.Error("expected error from query failure, got nil")
	}
}

// TestFetchRankings_ScanError tests row scanning error
func TestFetchRankings_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	// weapon_id should be int, not string
	rows := sqlmock.NewRows([]string{"player_id", "weapon_id", "rule_id", "rank", "rating", "start_time"}).
		AddRow("p1", "not-a-number", 1, 1, 2800.0, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM x_rankings").WillReturnRows(rows)

	_, err := repo.FetchRankings(ctx, models.ScopeFilter{Kind: models.KindX})
	if err == nil {
		t.Error("expected error from scan failure, got nil")
	}
}

// TestFetchGroupRecords_QueryError tests database error propagation
func TestFetchGroupRecords_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM league_rankings").WillReturnError(errors.New("database locked"))

	_, err := repo.FetchGroupRecords(ctx, "g1", time.Now())
	if err == nil {
		t.Error("expected error from query failure, got nil")
	}
}

// TestLatestXRankingTime_QueryError tests database error propagation
func TestLatestXRankingTime_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT start_time FROM x_rankings ORDER BY start_time DESC LIMIT 1").WillReturnError(errors.New("database locked"))

	_, err := repo.LatestXRankingTime(ctx)
	if err == nil {
		t.Error("expected error from query failure, got nil")
	}
}

// TestGetLeagueSchedule_CorruptStageIDs tests JSON decode failure
func TestGetLeagueSchedule_CorruptStageIDs(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	w := time.Date(2019, time.January, 5, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"start_time", "rule_id", "stage_ids"}).
		AddRow(w, 2, "{not json")

	mock.ExpectQuery("SELECT (.+) FROM league_schedules").WillReturnRows(rows)

	_, err := repo.GetLeagueSchedule(ctx, w)
	if err == nil {
		t.Error("expected error from corrupt stage_ids, got nil")
	}
}

// TestListWeapons_ScanError tests row scanning error
func TestListWeapons_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"weapon_id", "weapon_key", "sub_weapon_id", "special_weapon_id", "main_reference", "weapon_class_id", "reskin_of"}).
		AddRow("bad-id", "sshooter", 2, 9, 10, 1, nil)

	mock.ExpectQuery("SELECT (.+) FROM weapons").WillReturnRows(rows)

	_, err := repo.ListWeapons(ctx)
	if err == nil {
		t.Error("expected error from scan failure, got nil")
	}
}

// TestSearchPlayers_QueryError tests database error propagation
func TestSearchPlayers_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM player_names").WillReturnError(errors.New("database locked"))

	_, err := repo.SearchPlayers(ctx, "Squid", 10)
	if err == nil {
		t.Error("expected error from query failure, got nil")
	}
}

// TestStats_QueryError tests database error propagation
func TestStats_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("database locked"))

	_, err := repo.Stats(ctx)
	if err == nil {
		t.Error("expected error from query failure, got nil")
	}
}
