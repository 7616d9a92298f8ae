package models

import (
	"fmt"
	"time"
)

// RankingKind selects which competitive mode a query runs against
type RankingKind string

const (
	KindX         RankingKind = "x"
	KindLeague    RankingKind = "league"
	KindSplatfest RankingKind = "splatfest"
)

// ParseRankingKind validates a ranking kind string
func ParseRankingKind(s string) (RankingKind, bool) {
	switch RankingKind(s) {
	case KindX, KindLeague, KindSplatfest:
		return RankingKind(s), true
	}
	return "", false
}

// GroupType identifies the roster size of a league placement.
// The values match the group_type column of the store ("T" or "P").
type GroupType string

const (
	GroupTypeTeam GroupType = "T"
	GroupTypePair GroupType = "P"
)

// GroupTypes lists all group types in canonical order
var GroupTypes = []GroupType{GroupTypeTeam, GroupTypePair}

// ParseGroupType accepts either the short store value ("T"/"P") or the
// long key ("team"/"pair")
func ParseGroupType(s string) (GroupType, bool) {
	switch s {
	case "T", "team":
		return GroupTypeTeam, true
	case "P", "pair":
		return GroupTypePair, true
	}
	return "", false
}

// Members returns the declared roster size for the group type
func (g GroupType) Members() int {
	if g == GroupTypePair {
		return 2
	}
	return 4
}

// Key returns the long name used in API responses
func (g GroupType) Key() string {
	if g == GroupTypePair {
		return "pair"
	}
	return "team"
}

// Dimension is the classification axis for popularity aggregation.
// The values match the weaponType path segments of the API.
type Dimension string

const (
	DimensionWeapon  Dimension = "weapons"
	DimensionMain    Dimension = "mains"
	DimensionSub     Dimension = "subs"
	DimensionSpecial Dimension = "specials"
)

// ParseDimension validates a classification dimension string
func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case DimensionWeapon, DimensionMain, DimensionSub, DimensionSpecial:
		return Dimension(s), true
	}
	return "", false
}

// Period is a calendar-month time bucket (UTC)
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "YYYY-MM" period string
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return PeriodOf(t), nil
}

// Time returns the start of the period
func (p Period) Time() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar month
func (p Period) Next() Period {
	return PeriodOf(p.Time().AddDate(0, 1, 0))
}

// Before reports whether p is strictly earlier than other
func (p Period) Before(other Period) bool {
	return p.Time().Before(other.Time())
}

// IsZero reports whether p is the zero period
func (p Period) IsZero() bool {
	return p.Year == 0
}

func (p Period) String() string {
	return p.Time().Format("2006-01")
}

// RankingRecord is one competitive placement as supplied by the store.
// GroupID and GroupType are empty for individual (non-grouped) modes.
type RankingRecord struct {
	PlayerID  string    `json:"player_id"`
	WeaponID  int       `json:"weapon_id"`
	RuleID    int       `json:"rule_id"`
	Rank      int       `json:"rank"`
	Rating    float64   `json:"rating"`
	StartTime time.Time `json:"start_time"`
	GroupID   string    `json:"group_id,omitempty"`
	GroupType GroupType `json:"group_type,omitempty"`
}

// ScopeFilter constrains a store fetch. Zero-valued fields mean
// "no constraint"; all given fields must match.
type ScopeFilter struct {
	Kind        RankingKind
	RuleID      int
	WeaponIDs   []int
	Period      *Period
	Start       *Period    // inclusive
	End         *Period    // exclusive
	Window      *time.Time // exact rotation window start (league only)
	GroupType   GroupType
	Region      string
	SplatfestID int
}

// RankedEntry is a leaderboard row with the player's resolved name.
// PlayerName is nil when the name directory has never seen the player.
type RankedEntry struct {
	PlayerID   string    `json:"player_id"`
	PlayerName *string   `json:"player_name"`
	WeaponID   int       `json:"weapon_id"`
	RuleID     int       `json:"rule_id"`
	Rank       int       `json:"rank"`
	Rating     float64   `json:"rating"`
	StartTime  time.Time `json:"start_time"`
}

// RosterMember is one player of a team/pair placement
type RosterMember struct {
	PlayerID   string  `json:"player_id"`
	WeaponID   int     `json:"weapon_id"`
	PlayerName *string `json:"player_name"`
}

// GroupRoster is a fully assembled team/pair placement
type GroupRoster struct {
	GroupID   string         `json:"group_id"`
	GroupType GroupType      `json:"group_type"`
	StartTime time.Time      `json:"start_time"`
	Rating    float64        `json:"rating"`
	StageIDs  []int          `json:"stage_ids,omitempty"`
	Members   []RosterMember `json:"members"`
}

// PopularityBucket is one classification value with its usage share
type PopularityBucket struct {
	Value      int     `json:"weapon_id"`
	Count      int     `json:"count"`
	Rank       int     `json:"rank"`
	Percentage float64 `json:"percentage"`
}

// TrendEntry pairs the popularity of one classification value across
// two periods
type TrendEntry struct {
	Value         int `json:"weapon_id"`
	PreviousCount int `json:"previous_month_count"`
	PreviousRank  int `json:"previous_month_rank"`
	CurrentCount  int `json:"current_month_count"`
	CurrentRank   int `json:"current_month_rank"`
}

// AllTimeWeaponRecord holds the single best placement per rule for one
// canonical weapon. TopPlayers is indexed in canonical rule order; a
// rule never observed for the weapon is an explicit nil slot.
type AllTimeWeaponRecord struct {
	WeaponID   int            `json:"weapon_id"`
	TopPlayers []*RankedEntry `json:"top_players"`
}

// Weapon is one row of the static weapon reference table
type Weapon struct {
	ID            int    `json:"weapon_id"`
	Key           string `json:"weapon_key"`
	SubWeaponID   int    `json:"sub_weapon_id"`
	SpecialID     int    `json:"special_weapon_id"`
	MainReference int    `json:"main_reference"`
	ClassID       int    `json:"weapon_class_id"`
	ReskinOf      *int   `json:"reskin_of,omitempty"`
}

// PlayerName is one observed name of a player
type PlayerName struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	LastUsed   time.Time `json:"last_used"`
}

// LeagueSchedule describes one league rotation window
type LeagueSchedule struct {
	StartTime time.Time `json:"start_time"`
	RuleID    int       `json:"rule_id"`
	StageIDs  []int     `json:"stage_ids"`
}

// Snapshot is the composite record view served by /records
type Snapshot struct {
	Period        string                             `json:"period"`
	XRecords      map[string][]RankedEntry           `json:"x_ranked_rating_records"`
	LeagueRecords map[string]map[string][]GroupRoster `json:"league_rating_records"`
	WeaponRecords []AllTimeWeaponRecord              `json:"weapons_top_players"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
