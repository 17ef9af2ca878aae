package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"resonate/internal/ledger"
	"resonate/internal/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var noSnapshot bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Index the music library and write the index snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			return withLedgerRun(cmd.Context(), cfg, ledger.KindScan, func(runCtx context.Context, store *ledger.Store, runID string) (any, error) {
				idx, report, err := buildIndex(runCtx, cfg, logger)
				if err != nil {
					return nil, err
				}

				snapshotPath := ""
				if !noSnapshot {
					snapshotPath = filepath.Join(cfg.Paths.ReportsDir, "library_index.csv")
					if err := library.WriteSnapshot(idx, snapshotPath); err != nil {
						return nil, err
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Files Seen", "Indexed", "Skipped"},
					[][]string{{
						fmt.Sprintf("%d", report.FilesSeen),
						fmt.Sprintf("%d", report.Indexed),
						fmt.Sprintf("%d", len(report.Skipped)),
					}},
					1, 2, 3,
				))
				for _, skipped := range report.Skipped {
					fmt.Fprintf(out, "skipped %s: %v\n", skipped.RelPath, skipped.Err)
				}
				if snapshotPath != "" {
					fmt.Fprintf(out, "Index snapshot written to %s\n", snapshotPath)
				}

				return map[string]any{
					"files_seen": report.FilesSeen,
					"indexed":    report.Indexed,
					"skipped":    len(report.Skipped),
				}, nil
			})
		},
	}

	cmd.Flags().BoolVar(&noSnapshot, "no-snapshot", false, "Skip writing the library index CSV")
	return cmd
}
