package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"resonate/internal/config"
	"resonate/internal/export"
	"resonate/internal/ledger"
	"resonate/internal/match"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write device-ready .m3u8 playlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			return withLedgerRun(cmd.Context(), cfg, ledger.KindExport, func(runCtx context.Context, store *ledger.Store, runID string) (any, error) {
				idx, _, err := buildIndex(runCtx, cfg, logger)
				if err != nil {
					return nil, err
				}
				rows, err := loadRemoteRows(cfg, logger)
				if err != nil {
					return nil, err
				}
				results := matchRows(cfg, rows, idx)

				exported, err := runExport(cfg, logger, results)
				if err != nil {
					return nil, err
				}
				printExport(cmd.OutOrStdout(), exported)
				return exportSummary(exported), nil
			})
		},
	}
}

func runExport(cfg *config.Config, logger *slog.Logger, results []match.Result) ([]export.ExportedPlaylist, error) {
	exporter := export.NewExporter(cfg.Paths.ExportDir, cfg.MusicDirName(), logger)
	return exporter.WriteAll(results)
}

func printExport(out io.Writer, exported []export.ExportedPlaylist) {
	if len(exported) == 0 {
		fmt.Fprintln(out, "No playlists to export.")
		return
	}
	rows := make([][]string, 0, len(exported))
	for _, playlist := range exported {
		rows = append(rows, []string{
			playlist.Name,
			fmt.Sprintf("%d", playlist.Written),
			fmt.Sprintf("%d", playlist.Skipped),
			playlist.Path,
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Playlist", "Written", "Skipped", "File"}, rows, 2, 3))
}

func exportSummary(exported []export.ExportedPlaylist) map[string]any {
	written, skipped := 0, 0
	for _, playlist := range exported {
		written += playlist.Written
		skipped += playlist.Skipped
	}
	return map[string]any{
		"playlists": len(exported),
		"written":   written,
		"skipped":   skipped,
	}
}
