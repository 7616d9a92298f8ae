package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
	"github.com/abrezinsky/inkstats/internal/repository/mock"
	"github.com/abrezinsky/inkstats/internal/testutil"
)

func intPtr(v int) *int { return &v }

// testCatalog holds two reskins of weapon 10 plus two standalone
// weapons with distinct subs and specials
func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Weapon{
		{ID: 10, Key: "sshooter", SubWeaponID: 1, SpecialID: 9, MainReference: 10, ClassID: 1},
		{ID: 4010, Key: "sshooter_becchu", SubWeaponID: 1, SpecialID: 0, MainReference: 10, ClassID: 1, ReskinOf: intPtr(10)},
		{ID: 20, Key: "wakaba", SubWeaponID: 0, SpecialID: 1, MainReference: 20, ClassID: 1},
		{ID: 1000, Key: "splatroller", SubWeaponID: 2, SpecialID: 11, MainReference: 1000, ClassID: 3},
	})
}

func seedTestWeapons(t *testing.T, repo *repository.Repository) {
	t.Helper()
	for _, w := range testCatalog().Weapons() {
		testutil.SeedWeapon(t, repo, w)
	}
}

func newLeaderboard(log logger.Logger, repo LeaderboardRepository) *LeaderboardService {
	roster := NewRosterService(log, repo.(RosterRepository))
	return NewLeaderboardService(log, repo, testCatalog(), roster)
}

func jan2019() models.Period { return models.Period{Year: 2019, Month: time.January} }

func TestXWeaponTopK_ExpandsEquivalence(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	jan := testutil.Month(2019, time.January)
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p1", WeaponID: 4010, RuleID: 1, Rank: 1, Rating: 2800, StartTime: jan})
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p2", WeaponID: 10, RuleID: 1, Rank: 2, Rating: 2750, StartTime: jan})

	svc := newLeaderboard(logger.New(), repo)
	period := jan2019()

	// Querying either member of the class must surface the reskin's
	// higher-rated record.
	for _, weaponID := range []int{10, 4010} {
		entries, err := svc.XWeaponTopK(context.Background(), 1, weaponID, &period, 1)
		if err != nil {
			t.Fatalf("XWeaponTopK(%d) failed: %v", weaponID, err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Rating != 2800 || entries[0].WeaponID != 4010 {
			t.Errorf("XWeaponTopK(%d) = %+v, want the rating-2800 record", weaponID, entries[0])
		}
	}
}

func TestXWeaponTopK_ExcludesOtherClasses(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	jan := testutil.Month(2019, time.January)
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p1", WeaponID: 10, RuleID: 1, Rank: 2, Rating: 2700, StartTime: jan})
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p2", WeaponID: 20, RuleID: 1, Rank: 1, Rating: 2900, StartTime: jan})

	svc := newLeaderboard(logger.New(), repo)
	period := jan2019()

	entries, err := svc.XWeaponTopK(context.Background(), 1, 10, &period, 10)
	if err != nil {
		t.Fatalf("XWeaponTopK failed: %v", err)
	}
	for _, e := range entries {
		if e.WeaponID == 20 {
			t.Error("entry from outside the requested equivalence class")
		}
	}
}

func TestSplatfestWeaponTopK_ScopesToEvent(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	ctx := context.Background()

	seedSplatfest := func(region string, eventID int, player string, weapon int, rating float64) {
		t.Helper()
		err := repo.InsertSplatfestRanking(ctx, region, eventID, models.RankingRecord{
			PlayerID: player, WeaponID: weapon, Rank: 1, Rating: rating,
		})
		if err != nil {
			t.Fatalf("InsertSplatfestRanking failed: %v", err)
		}
	}
	seedSplatfest("na", 1, "p1", 4010, 2300)
	seedSplatfest("na", 1, "p2", 10, 2250)
	seedSplatfest("na", 1, "p3", 20, 2400)
	seedSplatfest("na", 2, "p4", 10, 2500)
	seedSplatfest("eu", 1, "p5", 10, 2500)

	svc := newLeaderboard(logger.New(), repo)

	entries, err := svc.SplatfestWeaponTopK(ctx, "na", 1, 10, 10)
	if err != nil {
		t.Fatalf("SplatfestWeaponTopK failed: %v", err)
	}
	// only event (na, 1), both members of the equivalence class,
	// weapon 20 excluded
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PlayerID != "p1" || entries[0].Rating != 2300 {
		t.Errorf("expected the reskin's higher record first, got %+v", entries[0])
	}

	entries, err = svc.SplatfestWeaponTopK(ctx, "na", 1, 10, 1)
	if err != nil {
		t.Fatalf("SplatfestWeaponTopK failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected truncation to 1 entry, got %d", len(entries))
	}
}

func TestXTopK_NeverExceedsK(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	jan := testutil.Month(2019, time.January)
	for i, player := range []string{"p1", "p2", "p3", "p4", "p5"} {
		testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: player, WeaponID: 10, RuleID: 1, Rank: i + 1, Rating: 2900 - float64(i*10), StartTime: jan})
	}

	svc := newLeaderboard(logger.New(), repo)
	period := jan2019()

	entries, err := svc.XTopK(context.Background(), 1, &period, 3)
	if err != nil {
		t.Fatalf("XTopK failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Rating != 2900 {
		t.Errorf("expected highest rating first, got %v", entries[0].Rating)
	}

	// K beyond available records returns what exists, never pads
	entries, err = svc.XTopK(context.Background(), 1, &period, 100)
	if err != nil {
		t.Fatalf("XTopK failed: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("expected 5 entries, got %d", len(entries))
	}
}

func TestXTopK_AttachesNames(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	jan := testutil.Month(2019, time.January)
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p1", WeaponID: 10, RuleID: 1, Rank: 1, Rating: 2800, StartTime: jan})
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p2", WeaponID: 10, RuleID: 1, Rank: 2, Rating: 2750, StartTime: jan})
	testutil.SeedPlayerName(t, repo, "p1", "SquidKid", jan)

	svc := newLeaderboard(logger.New(), repo)
	period := jan2019()

	entries, err := svc.XTopK(context.Background(), 1, &period, 10)
	if err != nil {
		t.Fatalf("XTopK failed: %v", err)
	}
	if entries[0].PlayerName == nil || *entries[0].PlayerName != "SquidKid" {
		t.Errorf("expected resolved name, got %v", entries[0].PlayerName)
	}
	if entries[1].PlayerName != nil {
		t.Errorf("expected nil name for unknown player, got %q", *entries[1].PlayerName)
	}
}

func TestXTopK_UpstreamError(t *testing.T) {
	repo := mock.NewRepository(testutil.NewTestRepository(t))
	repo.FetchRankingsError = stderrors.New("disk I/O error")

	svc := newLeaderboard(logger.New(), repo)
	period := jan2019()

	_, err := svc.XTopK(context.Background(), 1, &period, 10)
	if !errors.IsUpstream(err) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestLeagueWeaponTopK_DedupesGroupRows(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	w := time.Date(2019, time.January, 5, 10, 0, 0, 0, time.UTC)
	// Two member rows describe the same group occurrence
	testutil.SeedLeagueRanking(t, repo, models.RankingRecord{GroupID: "g1", GroupType: models.GroupTypePair, PlayerID: "p1", WeaponID: 10, Rank: 1, Rating: 2500, StartTime: w})
	testutil.SeedLeagueRanking(t, repo, models.RankingRecord{GroupID: "g1", GroupType: models.GroupTypePair, PlayerID: "p2", WeaponID: 4010, Rank: 1, Rating: 2500, StartTime: w})

	svc := newLeaderboard(logger.New(), repo)

	rosters, err := svc.LeagueWeaponTopK(context.Background(), 0, 10, models.GroupTypePair, 10)
	if err != nil {
		t.Fatalf("LeagueWeaponTopK failed: %v", err)
	}
	if len(rosters) != 1 {
		t.Fatalf("expected 1 deduplicated group, got %d", len(rosters))
	}
	if len(rosters[0].Members) != 2 {
		t.Errorf("expected full 2-member roster, got %d members", len(rosters[0].Members))
	}
}

func TestLeagueWeaponSetTopK_CanonicalComposition(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	w := time.Date(2019, time.January, 5, 10, 0, 0, 0, time.UTC)
	// g1's composition {4010, 20} canonicalizes to the requested {10, 20}
	testutil.SeedLeagueRanking(t, repo, models.RankingRecord{GroupID: "g1", GroupType: models.GroupTypePair, PlayerID: "p1", WeaponID: 4010, Rank: 1, Rating: 2500, StartTime: w})
	testutil.SeedLeagueRanking(t, repo, models.RankingRecord{GroupID: "g1", GroupType: models.GroupTypePair, PlayerID: "p2", WeaponID: 20, Rank: 1, Rating: 2500, StartTime: w})
	// g2 carries a roller; composition does not match
	testutil.SeedLeagueRanking(t, repo, models.RankingRecord{GroupID: "g2", GroupType: models.GroupTypePair, PlayerID: "p3", WeaponID: 10, Rank: 2, Rating: 2600, StartTime: w})
	testutil.SeedLeagueRanking(t, repo, models.RankingRecord{GroupID: "g2", GroupType: models.GroupTypePair, PlayerID: "p4", WeaponID: 1000, Rank: 2, Rating: 2600, StartTime: w})

	svc := newLeaderboard(logger.New(), repo)

	rosters, err := svc.LeagueWeaponSetTopK(context.Background(), 0, []int{10, 20}, models.GroupTypePair, 10)
	if err != nil {
		t.Fatalf("LeagueWeaponSetTopK failed: %v", err)
	}
	if len(rosters) != 1 {
		t.Fatalf("expected 1 matching group, got %d", len(rosters))
	}
	if rosters[0].GroupID != "g1" {
		t.Errorf("expected g1, got %s", rosters[0].GroupID)
	}
}

func TestLeagueWeaponSetTopK_EmptySet(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := newLeaderboard(logger.New(), repo)

	_, err := svc.LeagueWeaponSetTopK(context.Background(), 0, nil, models.GroupTypePair, 10)
	if !errors.IsInvalidArgument(err) {
		t.Errorf("expected invalid-argument error, got %v", err)
	}
}

func TestTopPlayersForPeriod(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	jan := testutil.Month(2019, time.January)
	feb := testutil.Month(2019, time.February)
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p1", WeaponID: 10, RuleID: 1, Rank: 2, Rating: 2700, StartTime: jan})
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p2", WeaponID: 10, RuleID: 1, Rank: 1, Rating: 2800, StartTime: jan})
	// Outside the requested period
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p3", WeaponID: 10, RuleID: 1, Rank: 1, Rating: 2950, StartTime: feb})
	// Reskin id 4010 is requested literally, not via expansion
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p4", WeaponID: 4010, RuleID: 1, Rank: 3, Rating: 2650, StartTime: jan})

	svc := newLeaderboard(logger.New(), repo)

	top, err := svc.TopPlayersForPeriod(context.Background(), 1, jan2019(), []int{10, 20})
	if err != nil {
		t.Fatalf("TopPlayersForPeriod failed: %v", err)
	}
	if entry := top[10]; entry == nil || entry.PlayerID != "p2" {
		t.Errorf("top[10] = %+v, want p2's record", entry)
	}
	if _, ok := top[4010]; ok {
		t.Error("unrequested weapon id 4010 should not appear")
	}
	if _, ok := top[20]; ok {
		t.Error("weapon 20 has no placements and must be absent, not nil-padded")
	}
}

func TestTopPlayersForPeriod_TieBreaksByPlayerID(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	jan := testutil.Month(2019, time.January)
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "pz", WeaponID: 10, RuleID: 1, Rank: 1, Rating: 2800, StartTime: jan})
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "pa", WeaponID: 10, RuleID: 1, Rank: 2, Rating: 2800, StartTime: jan})

	svc := newLeaderboard(logger.New(), repo)

	top, err := svc.TopPlayersForPeriod(context.Background(), 1, jan2019(), []int{10})
	if err != nil {
		t.Fatalf("TopPlayersForPeriod failed: %v", err)
	}
	if top[10].PlayerID != "pa" {
		t.Errorf("tie should go to the lexically smaller player id, got %s", top[10].PlayerID)
	}
}

func TestAllTimeWeaponRecords(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	seedTestWeapons(t, repo)
	jan := testutil.Month(2019, time.January)
	feb := testutil.Month(2019, time.February)
	// Reskin 4010 and canonical 10 fold into one weapon entry
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p1", WeaponID: 10, RuleID: 1, Rank: 1, Rating: 2800, StartTime: jan})
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p2", WeaponID: 4010, RuleID: 1, Rank: 1, Rating: 2900, StartTime: feb})
	testutil.SeedXRanking(t, repo, models.RankingRecord{PlayerID: "p3", WeaponID: 10, RuleID: 3, Rank: 1, Rating: 2750, StartTime: jan})

	svc := newLeaderboard(logger.New(), repo)

	records, err := svc.AllTimeWeaponRecords(context.Background())
	if err != nil {
		t.Fatalf("AllTimeWeaponRecords failed: %v", err)
	}

	var shooter *models.AllTimeWeaponRecord
	for i := range records {
		if records[i].WeaponID == 10 {
			shooter = &records[i]
		}
		if records[i].WeaponID == 4010 {
			t.Error("reskin id must not appear as its own weapon entry")
		}
		if len(records[i].TopPlayers) != len(catalog.RankedRules) {
			t.Errorf("weapon %d has %d rule slots, want %d", records[i].WeaponID, len(records[i].TopPlayers), len(catalog.RankedRules))
		}
	}
	if shooter == nil {
		t.Fatal("no entry for canonical weapon 10")
	}
	// Slot order follows the canonical rule ordering: zones, tower,
	// rainmaker, clams.
	if shooter.TopPlayers[0] == nil || shooter.TopPlayers[0].Rating != 2900 {
		t.Errorf("splat_zones slot = %+v, want the cross-period 2900 record", shooter.TopPlayers[0])
	}
	if shooter.TopPlayers[1] != nil {
		t.Error("tower_control slot should be an explicit nil, not a record")
	}
	if shooter.TopPlayers[2] == nil || shooter.TopPlayers[2].Rating != 2750 {
		t.Errorf("rainmaker slot = %+v, want the 2750 record", shooter.TopPlayers[2])
	}
}
