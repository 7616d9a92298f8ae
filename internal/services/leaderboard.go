package services

import (
	"context"
	"sort"
	"time"

	"github.com/abrezinsky/inkstats/internal/catalog"
	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
)

// LeaderboardRepository defines the repository methods needed by LeaderboardService
type LeaderboardRepository interface {
	repository.RankingStore
	repository.NameStore
}

// LeaderboardService computes top-K leaderboards over placement records.
// All ordering and truncation happens in process; the store supplies
// unranked rows.
type LeaderboardService struct {
	log     logger.Logger
	repo    LeaderboardRepository
	catalog *catalog.Catalog
	roster  RosterServicer
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(log logger.Logger, repo LeaderboardRepository, cat *catalog.Catalog, roster RosterServicer) *LeaderboardService {
	return &LeaderboardService{
		log:     log,
		repo:    repo,
		catalog: cat,
		roster:  roster,
	}
}

// XTopK returns the top k individual x placements for a rule within a
// period. A zero ruleID means no rule constraint; a nil period means
// all time.
func (s *LeaderboardService) XTopK(ctx context.Context, ruleID int, period *models.Period, k int) ([]models.RankedEntry, error) {
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{
		Kind:   models.KindX,
		RuleID: ruleID,
		Period: period,
	})
	if err != nil {
		return nil, errors.Upstream("x ranking fetch failed", err)
	}
	return s.topEntries(ctx, records, k)
}

// XWeaponTopK returns the top k individual x placements using any
// weapon in weaponID's equivalence class
func (s *LeaderboardService) XWeaponTopK(ctx context.Context, ruleID, weaponID int, period *models.Period, k int) ([]models.RankedEntry, error) {
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{
		Kind:      models.KindX,
		RuleID:    ruleID,
		WeaponIDs: s.catalog.MembersOf(weaponID),
		Period:    period,
	})
	if err != nil {
		return nil, errors.Upstream("x ranking fetch failed", err)
	}
	return s.topEntries(ctx, records, k)
}

// SplatfestWeaponTopK returns the top k splatfest placements for one
// event using any weapon in weaponID's equivalence class
func (s *LeaderboardService) SplatfestWeaponTopK(ctx context.Context, region string, splatfestID, weaponID, k int) ([]models.RankedEntry, error) {
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{
		Kind:        models.KindSplatfest,
		Region:      region,
		SplatfestID: splatfestID,
		WeaponIDs:   s.catalog.MembersOf(weaponID),
	})
	if err != nil {
		return nil, errors.Upstream("splatfest ranking fetch failed", err)
	}
	return s.topEntries(ctx, records, k)
}

// LeagueWeaponTopK returns the top k group placements where any member
// used a weapon in weaponID's equivalence class. Rosters are fully
// resolved.
func (s *LeaderboardService) LeagueWeaponTopK(ctx context.Context, ruleID, weaponID int, groupType models.GroupType, k int) ([]models.GroupRoster, error) {
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{
		Kind:      models.KindLeague,
		RuleID:    ruleID,
		WeaponIDs: s.catalog.MembersOf(weaponID),
		GroupType: groupType,
	})
	if err != nil {
		return nil, errors.Upstream("league ranking fetch failed", err)
	}
	groups := dedupeGroups(records)
	return s.topRosters(ctx, groups, k)
}

// LeagueTopK returns the top k group placements for a rule and group
// type regardless of weapon choice
func (s *LeaderboardService) LeagueTopK(ctx context.Context, ruleID int, groupType models.GroupType, k int) ([]models.GroupRoster, error) {
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{
		Kind:      models.KindLeague,
		RuleID:    ruleID,
		GroupType: groupType,
	})
	if err != nil {
		return nil, errors.Upstream("league ranking fetch failed", err)
	}
	groups := dedupeGroups(records)
	return s.topRosters(ctx, groups, k)
}

// LeagueWindowTopK returns the standings of one rotation window: every
// group placement in the window for the group type, best rating first
func (s *LeaderboardService) LeagueWindowTopK(ctx context.Context, window time.Time, groupType models.GroupType, k int) ([]models.GroupRoster, error) {
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{
		Kind:      models.KindLeague,
		GroupType: groupType,
		Window:    &window,
	})
	if err != nil {
		return nil, errors.Upstream("league ranking fetch failed", err)
	}
	groups := dedupeGroups(records)
	return s.topRosters(ctx, groups, k)
}

// LeagueWeaponSetTopK returns the top k group placements whose full
// weapon composition matches weaponIDs, either exactly or after
// canonicalizing every member's weapon. weaponIDs is a multiset; a
// repeated id means two members carried it.
func (s *LeaderboardService) LeagueWeaponSetTopK(ctx context.Context, ruleID int, weaponIDs []int, groupType models.GroupType, k int) ([]models.GroupRoster, error) {
	if len(weaponIDs) == 0 {
		return nil, errors.InvalidArgument("weapon set must not be empty")
	}
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{
		Kind:      models.KindLeague,
		RuleID:    ruleID,
		WeaponIDs: s.catalog.Expand(weaponIDs),
		GroupType: groupType,
	})
	if err != nil {
		return nil, errors.Upstream("league ranking fetch failed", err)
	}

	wantExact := sortedCopy(weaponIDs)
	wantCanonical := s.canonicalMultiset(weaponIDs)

	// Collect each group's weapon multiset. A group whose remaining
	// members used weapons outside the expanded set comes back with
	// fewer rows than its composition and fails the comparison below.
	type groupKey struct {
		groupID   string
		startTime int64
	}
	weaponsByGroup := make(map[groupKey][]int)
	for _, rec := range records {
		key := groupKey{rec.GroupID, rec.StartTime.Unix()}
		weaponsByGroup[key] = append(weaponsByGroup[key], rec.WeaponID)
	}

	groups := dedupeGroups(records)
	matched := groups[:0]
	for _, g := range groups {
		got := sortedCopy(weaponsByGroup[groupKey{g.GroupID, g.StartTime.Unix()}])
		if equalInts(got, wantExact) || equalInts(s.canonicalMultiset(got), wantCanonical) {
			matched = append(matched, g)
		}
	}
	return s.topRosters(ctx, matched, k)
}

// TopPlayersForPeriod returns, per requested weapon id, the single
// highest-rating placement within a rule and period. Requested ids are
// taken literally and not expanded; ids with no placements are absent
// from the result.
func (s *LeaderboardService) TopPlayersForPeriod(ctx context.Context, ruleID int, period models.Period, weaponIDs []int) (map[int]*models.RankedEntry, error) {
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{
		Kind:      models.KindX,
		RuleID:    ruleID,
		WeaponIDs: weaponIDs,
		Period:    &period,
	})
	if err != nil {
		return nil, errors.Upstream("x ranking fetch failed", err)
	}

	best := make(map[int]models.RankingRecord)
	for _, rec := range records {
		cur, ok := best[rec.WeaponID]
		if !ok || betterRecord(rec, cur) {
			best[rec.WeaponID] = rec
		}
	}

	result := make(map[int]*models.RankedEntry, len(best))
	for weaponID, rec := range best {
		entry, err := s.toEntry(ctx, rec)
		if err != nil {
			return nil, err
		}
		result[weaponID] = entry
	}
	return result, nil
}

// AllTimeWeaponRecords returns, for every canonical weapon, the single
// highest-ever placement per rule across all periods. TopPlayers slots
// follow the canonical rule order; a rule with no placements for the
// weapon stays nil.
func (s *LeaderboardService) AllTimeWeaponRecords(ctx context.Context) ([]models.AllTimeWeaponRecord, error) {
	records, err := s.repo.FetchRankings(ctx, models.ScopeFilter{Kind: models.KindX})
	if err != nil {
		return nil, errors.Upstream("x ranking fetch failed", err)
	}

	type slot struct {
		weapon int
		rule   int
	}
	best := make(map[slot]models.RankingRecord)
	for _, rec := range records {
		key := slot{s.catalog.CanonicalOf(rec.WeaponID), rec.RuleID}
		cur, ok := best[key]
		if !ok || betterRecord(rec, cur) {
			best[key] = rec
		}
	}

	ruleIndex := make(map[int]int, len(catalog.RankedRules))
	for i, rule := range catalog.RankedRules {
		ruleIndex[rule.ID] = i
	}

	var result []models.AllTimeWeaponRecord
	for _, weaponID := range s.catalog.CanonicalWeaponIDs() {
		record := models.AllTimeWeaponRecord{
			WeaponID:   weaponID,
			TopPlayers: make([]*models.RankedEntry, len(catalog.RankedRules)),
		}
		for _, rule := range catalog.RankedRules {
			rec, ok := best[slot{weaponID, rule.ID}]
			if !ok {
				continue
			}
			entry, err := s.toEntry(ctx, rec)
			if err != nil {
				return nil, err
			}
			record.TopPlayers[ruleIndex[rule.ID]] = entry
		}
		result = append(result, record)
	}
	return result, nil
}

// topEntries sorts individual records by rating and truncates to k,
// attaching names to the survivors only
func (s *LeaderboardService) topEntries(ctx context.Context, records []models.RankingRecord, k int) ([]models.RankedEntry, error) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Rating != records[j].Rating {
			return records[i].Rating > records[j].Rating
		}
		return records[i].PlayerID < records[j].PlayerID
	})
	if k >= 0 && len(records) > k {
		records = records[:k]
	}

	entries := make([]models.RankedEntry, 0, len(records))
	for _, rec := range records {
		entry, err := s.toEntry(ctx, rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func (s *LeaderboardService) topRosters(ctx context.Context, groups []models.RankingRecord, k int) ([]models.GroupRoster, error) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Rating > groups[j].Rating
	})
	if k >= 0 && len(groups) > k {
		groups = groups[:k]
	}

	rosters := make([]models.GroupRoster, 0, len(groups))
	for _, g := range groups {
		roster, err := s.roster.ResolveRoster(ctx, g.GroupID, g.StartTime)
		if err != nil {
			return nil, err
		}
		rosters = append(rosters, *roster)
	}
	return rosters, nil
}

func (s *LeaderboardService) toEntry(ctx context.Context, rec models.RankingRecord) (*models.RankedEntry, error) {
	name, err := resolveName(ctx, s.repo, rec.PlayerID)
	if err != nil {
		return nil, err
	}
	return &models.RankedEntry{
		PlayerID:   rec.PlayerID,
		PlayerName: name,
		WeaponID:   rec.WeaponID,
		RuleID:     rec.RuleID,
		Rank:       rec.Rank,
		Rating:     rec.Rating,
		StartTime:  rec.StartTime,
	}, nil
}

// dedupeGroups collapses member rows of the same group occurrence into
// one record, keyed by (group_id, rating, start_time). Multiple rows
// describe the same placement once per member; the placement must rank
// once. Insertion order is preserved.
func dedupeGroups(records []models.RankingRecord) []models.RankingRecord {
	type key struct {
		groupID   string
		rating    float64
		startTime int64
	}
	seen := make(map[key]struct{})
	var groups []models.RankingRecord
	for _, rec := range records {
		k := key{rec.GroupID, rec.Rating, rec.StartTime.Unix()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		groups = append(groups, rec)
	}
	return groups
}

// canonicalMultiset maps each id to its canonical and sorts, keeping
// duplicates. Unlike Catalog.CanonicalizeSet this compares compositions
// where the same weapon may appear twice.
func (s *LeaderboardService) canonicalMultiset(ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = s.catalog.CanonicalOf(id)
	}
	sort.Ints(out)
	return out
}

func sortedCopy(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	sort.Ints(out)
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// betterRecord reports whether a beats b for single-best selection:
// higher rating wins, ties go to the lexically smaller player id, then
// the earlier window
func betterRecord(a, b models.RankingRecord) bool {
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	if a.PlayerID != b.PlayerID {
		return a.PlayerID < b.PlayerID
	}
	return a.StartTime.Before(b.StartTime)
}
