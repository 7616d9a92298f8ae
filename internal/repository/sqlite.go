package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/inkstats/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS weapons (
			weapon_id INTEGER PRIMARY KEY,
			weapon_key TEXT NOT NULL UNIQUE,
			sub_weapon_id INTEGER NOT NULL,
			special_weapon_id INTEGER NOT NULL,
			main_reference INTEGER NOT NULL,
			weapon_class_id INTEGER NOT NULL,
			reskin_of INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS x_rankings (
			player_id TEXT NOT NULL,
			weapon_id INTEGER NOT NULL,
			rule_id INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			rating REAL NOT NULL,
			start_time DATETIME NOT NULL,
			UNIQUE(player_id, rule_id, start_time)
		)`,
		`CREATE TABLE IF NOT EXISTS league_rankings (
			group_id TEXT NOT NULL,
			group_type TEXT NOT NULL,
			player_id TEXT NOT NULL,
			weapon_id INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			rating REAL NOT NULL,
			start_time DATETIME NOT NULL,
			UNIQUE(group_id, player_id, start_time)
		)`,
		`CREATE TABLE IF NOT EXISTS league_schedules (
			start_time DATETIME PRIMARY KEY,
			rule_id INTEGER NOT NULL,
			stage_ids TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS splatfest_rankings (
			region TEXT NOT NULL,
			splatfest_id INTEGER NOT NULL,
			player_id TEXT NOT NULL,
			weapon_id INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			rating REAL NOT NULL,
			UNIQUE(region, splatfest_id, player_id)
		)`,
		`CREATE TABLE IF NOT EXISTS player_names (
			player_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			last_used DATETIME NOT NULL,
			UNIQUE(player_id, player_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_x_rankings_start_time ON x_rankings(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_x_rankings_weapon ON x_rankings(weapon_id)`,
		`CREATE INDEX IF NOT EXISTS idx_league_rankings_start_time ON league_rankings(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_league_rankings_group ON league_rankings(group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_player_names_player ON player_names(player_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// FetchRankings returns placement rows matching the filter. Zero-valued
// filter fields do not constrain the fetch. Rows come back in a stable
// order: rating descending, then player id, weapon id, start time.
func (r *Repository) FetchRankings(ctx context.Context, filter models.ScopeFilter) ([]models.RankingRecord, error) {
	switch filter.Kind {
	case models.KindLeague:
		return r.fetchLeagueRankings(ctx, filter)
	case models.KindSplatfest:
		return r.fetchSplatfestRankings(ctx, filter)
	default:
		return r.fetchXRankings(ctx, filter)
	}
}

func (r *Repository) fetchXRankings(ctx context.Context, filter models.ScopeFilter) ([]models.RankingRecord, error) {
	query := `SELECT player_id, weapon_id, rule_id, rank, rating, start_time FROM x_rankings`
	var conds []string
	var args []interface{}

	if filter.RuleID != 0 {
		conds = append(conds, "rule_id = ?")
		args = append(args, filter.RuleID)
	}
	if len(filter.WeaponIDs) > 0 {
		conds = append(conds, fmt.Sprintf("weapon_id IN (%s)", placeholders(len(filter.WeaponIDs))))
		for _, id := range filter.WeaponIDs {
			args = append(args, id)
		}
	}
	conds, args = appendPeriodConds(conds, args, "start_time", filter)

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rating DESC, player_id ASC, weapon_id ASC, start_time ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RankingRecord
	for rows.Next() {
		var rec models.RankingRecord
		if err := rows.Scan(&rec.PlayerID, &rec.WeaponID, &rec.RuleID, &rec.Rank, &rec.Rating, &rec.StartTime); err != nil {
			return nil, err
		}
		rec.StartTime = rec.StartTime.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) fetchLeagueRankings(ctx context.Context, filter models.ScopeFilter) ([]models.RankingRecord, error) {
	// Rule constraints on league placements come from the rotation
	// schedule, not the placement row itself.
	query := `SELECT lr.player_id, lr.weapon_id, COALESCE(ls.rule_id, 0), lr.rank, lr.rating, lr.start_time, lr.group_id, lr.group_type
		FROM league_rankings lr
		LEFT JOIN league_schedules ls ON ls.start_time = lr.start_time`
	var conds []string
	var args []interface{}

	if filter.RuleID != 0 {
		conds = append(conds, "ls.rule_id = ?")
		args = append(args, filter.RuleID)
	}
	if filter.GroupType != "" {
		conds = append(conds, "lr.group_type = ?")
		args = append(args, string(filter.GroupType))
	}
	if len(filter.WeaponIDs) > 0 {
		conds = append(conds, fmt.Sprintf("lr.weapon_id IN (%s)", placeholders(len(filter.WeaponIDs))))
		for _, id := range filter.WeaponIDs {
			args = append(args, id)
		}
	}
	if filter.Window != nil {
		conds = append(conds, "lr.start_time = ?")
		args = append(args, filter.Window.UTC())
	}
	conds, args = appendPeriodConds(conds, args, "lr.start_time", filter)

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY lr.rating DESC, lr.group_id ASC, lr.player_id ASC, lr.start_time ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RankingRecord
	for rows.Next() {
		var rec models.RankingRecord
		var groupType string
		if err := rows.Scan(&rec.PlayerID, &rec.WeaponID, &rec.RuleID, &rec.Rank, &rec.Rating, &rec.StartTime, &rec.GroupID, &groupType); err != nil {
			return nil, err
		}
		rec.StartTime = rec.StartTime.UTC()
		rec.GroupType = models.GroupType(groupType)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) fetchSplatfestRankings(ctx context.Context, filter models.ScopeFilter) ([]models.RankingRecord, error) {
	query := `SELECT player_id, weapon_id, rank, rating FROM splatfest_rankings`
	var conds []string
	var args []interface{}

	if filter.Region != "" {
		conds = append(conds, "region = ?")
		args = append(args, filter.Region)
	}
	if filter.SplatfestID != 0 {
		conds = append(conds, "splatfest_id = ?")
		args = append(args, filter.SplatfestID)
	}
	if len(filter.WeaponIDs) > 0 {
		conds = append(conds, fmt.Sprintf("weapon_id IN (%s)", placeholders(len(filter.WeaponIDs))))
		for _, id := range filter.WeaponIDs {
			args = append(args, id)
		}
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rating DESC, player_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RankingRecord
	for rows.Next() {
		var rec models.RankingRecord
		if err := rows.Scan(&rec.PlayerID, &rec.WeaponID, &rec.Rank, &rec.Rating); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// appendPeriodConds adds calendar-window conditions for the filter's
// Period or Start/End bounds over the given time column
func appendPeriodConds(conds []string, args []interface{}, col string, filter models.ScopeFilter) ([]string, []interface{}) {
	if filter.Period != nil {
		conds = append(conds, col+" >= ?", col+" < ?")
		args = append(args, filter.Period.Time(), filter.Period.Next().Time())
		return conds, args
	}
	if filter.Start != nil {
		conds = append(conds, col+" >= ?")
		args = append(args, filter.Start.Time())
	}
	if filter.End != nil {
		conds = append(conds, col+" < ?")
		args = append(args, filter.End.Time())
	}
	return conds, args
}

// FetchGroupRecords returns every placement row of one group in one
// rotation window, ordered by player id
func (r *Repository) FetchGroupRecords(ctx context.Context, groupID string, startTime time.Time) ([]models.RankingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, weapon_id, rank, rating, start_time, group_id, group_type
		FROM league_rankings
		WHERE group_id = ? AND start_time = ?
		ORDER BY player_id ASC`, groupID, startTime.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RankingRecord
	for rows.Next() {
		var rec models.RankingRecord
		var groupType string
		if err := rows.Scan(&rec.PlayerID, &rec.WeaponID, &rec.Rank, &rec.Rating, &rec.StartTime, &rec.GroupID, &groupType); err != nil {
			return nil, err
		}
		rec.StartTime = rec.StartTime.UTC()
		rec.GroupType = models.GroupType(groupType)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestXRankingTime returns the most recent x ranking window start.
// Returns ErrNotFound when no x rankings exist. Selecting the column
// directly instead of MAX() keeps the DATETIME decltype, which the
// sqlite driver needs to scan a time.Time.
func (r *Repository) LatestXRankingTime(ctx context.Context) (time.Time, error) {
	var latest time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT start_time FROM x_rankings ORDER BY start_time DESC LIMIT 1`).Scan(&latest)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return latest.UTC(), nil
}

// GetLeagueSchedule returns the rotation schedule entry for a window
// start. Returns ErrNotFound when the window is unknown.
func (r *Repository) GetLeagueSchedule(ctx context.Context, startTime time.Time) (*models.LeagueSchedule, error) {
	var sched models.LeagueSchedule
	var stageJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT start_time, rule_id, stage_ids FROM league_schedules WHERE start_time = ?`,
		startTime.UTC()).Scan(&sched.StartTime, &sched.RuleID, &stageJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sched.StartTime = sched.StartTime.UTC()
	if err := json.Unmarshal([]byte(stageJSON), &sched.StageIDs); err != nil {
		return nil, fmt.Errorf("corrupt stage_ids for schedule %s: %w", sched.StartTime, err)
	}
	return &sched, nil
}

// LatestName returns the most recently used name of a player.
// Returns ErrNotFound when the directory has never seen the player.
func (r *Repository) LatestName(ctx context.Context, playerID string) (*models.PlayerName, error) {
	var name models.PlayerName
	err := r.db.QueryRowContext(ctx,
		`SELECT player_id, player_name, last_used FROM player_names
		WHERE player_id = ? ORDER BY last_used DESC, player_name ASC LIMIT 1`,
		playerID).Scan(&name.PlayerID, &name.PlayerName, &name.LastUsed)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	name.LastUsed = name.LastUsed.UTC()
	return &name, nil
}

// KnownNames returns every recorded name of a player, most recent first
func (r *Repository) KnownNames(ctx context.Context, playerID string) ([]models.PlayerName, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, player_name, last_used FROM player_names
		WHERE player_id = ? ORDER BY last_used DESC, player_name ASC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []models.PlayerName
	for rows.Next() {
		var name models.PlayerName
		if err := rows.Scan(&name.PlayerID, &name.PlayerName, &name.LastUsed); err != nil {
			return nil, err
		}
		name.LastUsed = name.LastUsed.UTC()
		names = append(names, name)
	}
	return names, rows.Err()
}

// escapeLike neutralizes LIKE wildcards in a user-supplied search term
// so they match literally. Queries using it must carry ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// SearchPlayers finds players whose recorded names contain the given
// substring, most recently used first
func (r *Repository) SearchPlayers(ctx context.Context, name string, limit int) ([]models.PlayerName, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, player_name, last_used FROM player_names
		WHERE player_name LIKE ? ESCAPE '\' ORDER BY last_used DESC, player_id ASC LIMIT ?`,
		"%"+escapeLike(name)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []models.PlayerName
	for rows.Next() {
		var n models.PlayerName
		if err := rows.Scan(&n.PlayerID, &n.PlayerName, &n.LastUsed); err != nil {
			return nil, err
		}
		n.LastUsed = n.LastUsed.UTC()
		names = append(names, n)
	}
	return names, rows.Err()
}

// ListWeapons returns the full weapon reference table ordered by id
func (r *Repository) ListWeapons(ctx context.Context) ([]models.Weapon, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT weapon_id, weapon_key, sub_weapon_id, special_weapon_id, main_reference, weapon_class_id, reskin_of
		FROM weapons ORDER BY weapon_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weapons []models.Weapon
	for rows.Next() {
		var w models.Weapon
		var reskin sql.NullInt64
		if err := rows.Scan(&w.ID, &w.Key, &w.SubWeaponID, &w.SpecialID, &w.MainReference, &w.ClassID, &reskin); err != nil {
			return nil, err
		}
		if reskin.Valid {
			v := int(reskin.Int64)
			w.ReskinOf = &v
		}
		weapons = append(weapons, w)
	}
	return weapons, rows.Err()
}

// UpsertWeapon inserts or replaces one weapon reference row
func (r *Repository) UpsertWeapon(ctx context.Context, w models.Weapon) error {
	var reskin interface{}
	if w.ReskinOf != nil {
		reskin = *w.ReskinOf
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO weapons (weapon_id, weapon_key, sub_weapon_id, special_weapon_id, main_reference, weapon_class_id, reskin_of)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(weapon_id) DO UPDATE SET
			weapon_key = excluded.weapon_key,
			sub_weapon_id = excluded.sub_weapon_id,
			special_weapon_id = excluded.special_weapon_id,
			main_reference = excluded.main_reference,
			weapon_class_id = excluded.weapon_class_id,
			reskin_of = excluded.reskin_of`,
		w.ID, w.Key, w.SubWeaponID, w.SpecialID, w.MainReference, w.ClassID, reskin)
	return err
}

// InsertXRanking records one x placement, replacing any previous row
// for the same player, rule and window
func (r *Repository) InsertXRanking(ctx context.Context, rec models.RankingRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO x_rankings (player_id, weapon_id, rule_id, rank, rating, start_time)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.PlayerID, rec.WeaponID, rec.RuleID, rec.Rank, rec.Rating, rec.StartTime.UTC())
	return err
}

// InsertLeagueRanking records one league placement row
func (r *Repository) InsertLeagueRanking(ctx context.Context, rec models.RankingRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO league_rankings (group_id, group_type, player_id, weapon_id, rank, rating, start_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.GroupID, string(rec.GroupType), rec.PlayerID, rec.WeaponID, rec.Rank, rec.Rating, rec.StartTime.UTC())
	return err
}

// InsertSplatfestRanking records one splatfest placement row
func (r *Repository) InsertSplatfestRanking(ctx context.Context, region string, splatfestID int, rec models.RankingRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO splatfest_rankings (region, splatfest_id, player_id, weapon_id, rank, rating)
		VALUES (?, ?, ?, ?, ?, ?)`,
		region, splatfestID, rec.PlayerID, rec.WeaponID, rec.Rank, rec.Rating)
	return err
}

// UpsertLeagueSchedule records one rotation schedule entry
func (r *Repository) UpsertLeagueSchedule(ctx context.Context, sched models.LeagueSchedule) error {
	stageJSON, err := json.Marshal(sched.StageIDs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO league_schedules (start_time, rule_id, stage_ids) VALUES (?, ?, ?)
		ON CONFLICT(start_time) DO UPDATE SET rule_id = excluded.rule_id, stage_ids = excluded.stage_ids`,
		sched.StartTime.UTC(), sched.RuleID, string(stageJSON))
	return err
}

// UpsertPlayerName records a name sighting, keeping the most recent
// last_used per (player, name) pair
func (r *Repository) UpsertPlayerName(ctx context.Context, name models.PlayerName) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO player_names (player_id, player_name, last_used) VALUES (?, ?, ?)
		ON CONFLICT(player_id, player_name) DO UPDATE SET
			last_used = MAX(last_used, excluded.last_used)`,
		name.PlayerID, name.PlayerName, name.LastUsed.UTC())
	return err
}

// Stats returns aggregate counts over the store
func (r *Repository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	counts := map[string]string{
		"x_rankings":         `SELECT COUNT(*) FROM x_rankings`,
		"league_rankings":    `SELECT COUNT(*) FROM league_rankings`,
		"splatfest_rankings": `SELECT COUNT(*) FROM splatfest_rankings`,
		"weapons":            `SELECT COUNT(*) FROM weapons`,
		"known_players":      `SELECT COUNT(DISTINCT player_id) FROM player_names`,
	}
	for key, query := range counts {
		var count int
		if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, err
		}
		stats[key] = count
	}

	if latest, err := r.LatestXRankingTime(ctx); err == nil {
		stats["latest_x_period"] = models.PeriodOf(latest).String()
	}

	return stats, nil
}
