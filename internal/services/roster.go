package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
)

// RosterRepository defines the repository methods needed by RosterService
type RosterRepository interface {
	repository.RankingStore
	repository.NameStore
}

// RosterService assembles full team/pair rosters from grouped
// placement rows
type RosterService struct {
	log  logger.Logger
	repo RosterRepository
}

// NewRosterService creates a new RosterService
func NewRosterService(log logger.Logger, repo RosterRepository) *RosterService {
	return &RosterService{
		log:  log,
		repo: repo,
	}
}

// ResolveRoster joins every placement row sharing (groupID, startTime)
// into one roster. Missing names degrade to nil members, and a roster
// smaller than the group type's declared size is returned as-is; only
// a group key matching zero rows is a not-found failure.
func (s *RosterService) ResolveRoster(ctx context.Context, groupID string, startTime time.Time) (*models.GroupRoster, error) {
	records, err := s.repo.FetchGroupRecords(ctx, groupID, startTime)
	if err != nil {
		return nil, errors.Upstream("group record fetch failed", err)
	}
	if len(records) == 0 {
		return nil, errors.NotFoundf("no records for group %s at %s", groupID, startTime.UTC().Format(time.RFC3339))
	}

	roster := &models.GroupRoster{
		GroupID:   groupID,
		GroupType: records[0].GroupType,
		StartTime: records[0].StartTime,
		Rating:    records[0].Rating,
		Members:   make([]models.RosterMember, 0, len(records)),
	}
	for _, rec := range records {
		name, err := resolveName(ctx, s.repo, rec.PlayerID)
		if err != nil {
			return nil, err
		}
		roster.Members = append(roster.Members, models.RosterMember{
			PlayerID:   rec.PlayerID,
			WeaponID:   rec.WeaponID,
			PlayerName: name,
		})
	}

	if got, want := len(roster.Members), roster.GroupType.Members(); got < want {
		s.log.Debug("partial roster", "group_id", groupID, "members", got, "expected", want)
	}

	// The rotation schedule is optional context; an unknown window does
	// not fail roster assembly.
	sched, err := s.repo.GetLeagueSchedule(ctx, startTime)
	if err == nil {
		roster.StageIDs = sched.StageIDs
	} else if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Upstream("league schedule fetch failed", err)
	}

	return roster, nil
}
