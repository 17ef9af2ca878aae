package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"resonate/internal/config"
	"resonate/internal/ingest"
	"resonate/internal/ledger"
	"resonate/internal/remote"
	"resonate/internal/tags"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Move staged downloads into the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			return withLedgerRun(cmd.Context(), cfg, ledger.KindIngest, func(runCtx context.Context, store *ledger.Store, runID string) (any, error) {
				report, err := runIngest(runCtx, cfg, logger)
				if err != nil {
					return nil, err
				}
				if err := store.RecordIngestActions(runCtx, runID, report.Actions); err != nil {
					return nil, err
				}
				printIngestReport(cmd.OutOrStdout(), report)
				return ingestSummary(report), nil
			})
		},
	}
}

func runIngest(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ingest.Report, error) {
	ing := ingest.NewIngestor(ingest.Options{
		StagingRoot:     cfg.Paths.StagingDir,
		MusicRoot:       cfg.Paths.MusicDir,
		DropboxName:     cfg.Ingest.PlaylistDropbox,
		RemoveEmptyDirs: cfg.Ingest.RemoveEmptyDirs,
		Reader:          tags.NewTaglibReader(),
		Canonicalizer:   cfg.Canonicalizer(),
		Logger:          logger,
	})

	// Dropbox folders mirror the current playlist exports; a missing
	// playlists dir just means no folders to offer yet.
	if names, err := remote.PlaylistNamesInDir(cfg.Paths.PlaylistsDir); err == nil {
		if err := ing.EnsureDropboxes(names); err != nil {
			return nil, err
		}
	}

	return ing.Run(ctx)
}

func printIngestReport(out io.Writer, report *ingest.Report) {
	var rows [][]string
	for _, action := range report.Actions {
		target := action.Destination
		if action.Conflict != "" {
			target = action.Conflict
		}
		rows = append(rows, []string{string(action.Status), action.Source, target})
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "Nothing staged.")
		return
	}
	fmt.Fprintln(out, renderTable([]string{"Status", "Source", "Target"}, rows))

	if len(report.PerPlaylist) > 0 {
		playlists := make([]string, 0, len(report.PerPlaylist))
		for name := range report.PerPlaylist {
			playlists = append(playlists, name)
		}
		sort.Strings(playlists)
		for _, name := range playlists {
			fmt.Fprintf(out, "%s: %d added\n", name, report.PerPlaylist[name])
		}
	}
}

func ingestSummary(report *ingest.Report) map[string]any {
	return map[string]any{
		"moved":                   report.Count(ingest.StatusMoved),
		"skipped_exists":          report.Count(ingest.StatusSkippedExists),
		"skipped_duplicate_title": report.Count(ingest.StatusSkippedDuplicateTitle),
		"skipped_unknown_artist":  report.Count(ingest.StatusSkippedUnknownArtist),
		"skipped_unknown_album":   report.Count(ingest.StatusSkippedUnknownAlbum),
		"skipped_missing_tags":    report.Count(ingest.StatusSkippedMissingTags),
		"error_key":               report.Count(ingest.StatusErrorKey),
		"error_move":              report.Count(ingest.StatusErrorMove),
	}
}
