package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/models"
	"github.com/abrezinsky/inkstats/internal/repository"
)

// PlayerService handles player directory lookups
type PlayerService struct {
	log         logger.Logger
	repo        repository.NameStore
	frontendURL string
}

// NewPlayerService creates a new PlayerService
func NewPlayerService(log logger.Logger, repo repository.NameStore, frontendURL string) *PlayerService {
	return &PlayerService{
		log:         log,
		repo:        repo,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Search finds players by name substring
func (s *PlayerService) Search(ctx context.Context, name string, limit int) ([]models.PlayerName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.InvalidArgument("search name must not be empty")
	}
	names, err := s.repo.SearchPlayers(ctx, name, limit)
	if err != nil {
		return nil, errors.Upstream("player search failed", err)
	}
	return names, nil
}

// KnownNames returns every name a player has been seen under, most
// recent first. An unknown player yields an empty list, not an error.
func (s *PlayerService) KnownNames(ctx context.Context, playerID string) ([]models.PlayerName, error) {
	if playerID == "" {
		return nil, errors.InvalidArgument("player id must not be empty")
	}
	names, err := s.repo.KnownNames(ctx, playerID)
	if err != nil {
		return nil, errors.Upstream("known names lookup failed", err)
	}
	if names == nil {
		names = []models.PlayerName{}
	}
	return names, nil
}

// ShareQR renders a QR code PNG pointing at the player's frontend page
func (s *PlayerService) ShareQR(playerID string) ([]byte, error) {
	if playerID == "" {
		return nil, errors.InvalidArgument("player id must not be empty")
	}
	shareURL := fmt.Sprintf("%s/players/%s", s.frontendURL, playerID)
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		return nil, errors.Internal("QR encoding failed", err)
	}
	return png, nil
}
