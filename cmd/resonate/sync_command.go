package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resonate/internal/ingest"
	"resonate/internal/ledger"
)

// sync runs the whole pipeline in order: ingest staged files, rebuild the
// index, write reports, export playlists. One ledger run covers the lot.
func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Ingest, scan, report, and export in one pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			out := cmd.OutOrStdout()

			return withLedgerRun(cmd.Context(), cfg, ledger.KindSync, func(runCtx context.Context, store *ledger.Store, runID string) (any, error) {
				ingestReport, err := runIngest(runCtx, cfg, logger)
				if err != nil {
					return nil, err
				}
				if err := store.RecordIngestActions(runCtx, runID, ingestReport.Actions); err != nil {
					return nil, err
				}
				printIngestReport(out, ingestReport)

				idx, scanReport, err := buildIndex(runCtx, cfg, logger)
				if err != nil {
					return nil, err
				}
				fmt.Fprintf(out, "Indexed %d of %d files.\n", scanReport.Indexed, scanReport.FilesSeen)

				rows, err := loadRemoteRows(cfg, logger)
				if err != nil {
					return nil, err
				}
				results := matchRows(cfg, rows, idx)

				reportOut, err := runReport(cfg, logger, results, idx)
				if err != nil {
					return nil, err
				}
				printReport(out, reportOut)

				exported, err := runExport(cfg, logger, results)
				if err != nil {
					return nil, err
				}
				printExport(out, exported)

				return map[string]any{
					"moved":     ingestReport.Count(ingest.StatusMoved),
					"indexed":   scanReport.Indexed,
					"missing":   len(reportOut.Missing),
					"orphans":   len(reportOut.Orphans),
					"playlists": len(exported),
				}, nil
			})
		},
	}
}
