package services

import (
	"context"
	"testing"
	"time"

	"github.com/abrezinsky/inkstats/internal/errors"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/testutil"
)

func TestSearch(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	testutil.SeedPlayerName(t, repo, "p1", "SquidKid", testutil.Month(2019, time.January))
	testutil.SeedPlayerName(t, repo, "p2", "InkSquid", testutil.Month(2019, time.February))

	svc := NewPlayerService(logger.New(), repo, "https://inkstats.example")

	names, err := svc.Search(context.Background(), "Squid", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 matches, got %d", len(names))
	}
}

func TestSearch_EmptyName(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := NewPlayerService(logger.New(), repo, "https://inkstats.example")

	_, err := svc.Search(context.Background(), "   ", 10)
	if !errors.IsInvalidArgument(err) {
		t.Errorf("expected invalid-argument error, got %v", err)
	}
}

func TestShareQR(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := NewPlayerService(logger.New(), repo, "https://inkstats.example/")

	png, err := svc.ShareQR("p1")
	if err != nil {
		t.Fatalf("ShareQR failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected PNG bytes")
	}
	// PNG magic header
	if png[0] != 0x89 || string(png[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}

	if _, err := svc.ShareQR(""); !errors.IsInvalidArgument(err) {
		t.Errorf("expected invalid-argument for empty id, got %v", err)
	}
}

func TestKnownNames_UnknownPlayer(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := NewPlayerService(logger.New(), repo, "https://inkstats.example")

	names, err := svc.KnownNames(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("KnownNames failed: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Errorf("expected empty list, got %v", names)
	}
}
