package main

import (
	"context"
	"fmt"
	"log/slog"

	"resonate/internal/config"
	"resonate/internal/ledger"
	"resonate/internal/library"
	"resonate/internal/match"
	"resonate/internal/pipeline"
	"resonate/internal/remote"
	"resonate/internal/tags"
)

func buildIndex(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*library.Index, *library.ScanReport, error) {
	scanner := library.NewScanner(cfg.Paths.MusicDir, tags.NewTaglibReader(), cfg.Canonicalizer(), logger)
	return scanner.Scan(ctx)
}

func loadRemoteRows(cfg *config.Config, logger *slog.Logger) ([]remote.Row, error) {
	policy := remote.DefaultArtistPolicy()
	if len(cfg.Matching.ArtistSeparators) > 0 {
		policy.Separators = cfg.Matching.ArtistSeparators
	}
	loader := remote.NewLoader(cfg.Canonicalizer(), policy, logger)
	return loader.LoadDir(cfg.Paths.PlaylistsDir)
}

func matchRows(cfg *config.Config, rows []remote.Row, idx *library.Index) []match.Result {
	return match.Match(rows, idx, cfg.Matching.DurationToleranceMS)
}

// withLedgerRun wraps fn in a recorded ledger run. The context handed to
// fn carries the run ID so downstream components can tag their logs with
// it. The summary returned by fn is stored on success; a failure stores
// the error text instead.
func withLedgerRun(ctx context.Context, cfg *config.Config, kind string, fn func(ctx context.Context, store *ledger.Store, runID string) (any, error)) error {
	store, err := ledger.Open(cfg.LedgerPath())
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	defer store.Close()

	runID, err := store.BeginRun(ctx, kind)
	if err != nil {
		return fmt.Errorf("record run start: %w", err)
	}

	summary, err := fn(pipeline.WithRunID(ctx, runID), store, runID)
	if err != nil {
		_ = store.FinishRun(ctx, runID, ledger.StatusFailed, map[string]string{"error": err.Error()})
		return err
	}
	if finishErr := store.FinishRun(ctx, runID, ledger.StatusCompleted, summary); finishErr != nil {
		return finishErr
	}
	return nil
}
