package services

import (
	"context"
	stderrors "errors"

	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/repository"
)

// resolveName returns the player's latest known name, or nil when the
// directory has never seen the player. A missing name is not an error;
// a directory I/O failure is.
func resolveName(ctx context.Context, names repository.NameStore, playerID string) (*string, error) {
	name, err := names.LatestName(ctx, playerID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Upstream("name lookup failed", err)
	}
	return &name.PlayerName, nil
}
