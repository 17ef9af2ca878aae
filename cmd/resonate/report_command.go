package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"resonate/internal/config"
	"resonate/internal/ledger"
	"resonate/internal/library"
	"resonate/internal/match"
	"resonate/internal/report"
)

type reportOutput struct {
	Coverage    report.Coverage
	Missing     []report.MissingTrack
	Orphans     []library.Record
	MissingPath string
	OrphansPath string
}

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Write shopping-list and orphan reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			return withLedgerRun(cmd.Context(), cfg, ledger.KindReport, func(runCtx context.Context, store *ledger.Store, runID string) (any, error) {
				idx, _, err := buildIndex(runCtx, cfg, logger)
				if err != nil {
					return nil, err
				}
				rows, err := loadRemoteRows(cfg, logger)
				if err != nil {
					return nil, err
				}
				results := matchRows(cfg, rows, idx)

				output, err := runReport(cfg, logger, results, idx)
				if err != nil {
					return nil, err
				}
				printReport(cmd.OutOrStdout(), output)
				return reportSummary(output), nil
			})
		},
	}
}

func runReport(cfg *config.Config, logger *slog.Logger, results []match.Result, idx *library.Index) (*reportOutput, error) {
	now := time.Now()
	output := &reportOutput{
		Coverage: report.BuildCoverage(results),
		Missing:  report.BuildMissing(results),
		Orphans:  report.BuildOrphans(results, idx),
	}

	missingPath, err := report.WriteMissingCSV(output.Missing, cfg.Paths.ReportsDir, now)
	if err != nil {
		return nil, err
	}
	output.MissingPath = missingPath

	orphansPath, err := report.WriteOrphansCSV(output.Orphans, cfg.Paths.ReportsDir, now)
	if err != nil {
		return nil, err
	}
	output.OrphansPath = orphansPath

	logger.Info("reports written",
		slog.Int("missing", len(output.Missing)),
		slog.Int("orphans", len(output.Orphans)),
	)
	return output, nil
}

func printReport(out io.Writer, output *reportOutput) {
	rows := make([][]string, 0, len(output.Coverage.Playlists))
	for _, playlist := range output.Coverage.Playlists {
		rows = append(rows, []string{
			playlist.Name,
			fmt.Sprintf("%d", playlist.Total),
			fmt.Sprintf("%d", playlist.Resolved),
			fmt.Sprintf("%.1f%%", playlist.PercentComplete),
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Playlist", "Tracks", "Resolved", "Coverage"}, rows, 2, 3, 4))
	}
	fmt.Fprintf(out, "Missing tracks: %d (unique), written to %s\n", len(output.Missing), output.MissingPath)
	fmt.Fprintf(out, "Orphaned tracks: %d, written to %s\n", len(output.Orphans), output.OrphansPath)
}

func reportSummary(output *reportOutput) map[string]any {
	return map[string]any{
		"playlists": len(output.Coverage.Playlists),
		"missing":   len(output.Missing),
		"orphans":   len(output.Orphans),
	}
}
