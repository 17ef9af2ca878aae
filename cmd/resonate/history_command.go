package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"resonate/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded runs, or the per-file actions of one ingest run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := ledger.Open(cfg.LedgerPath())
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				actions, err := store.IngestActions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(actions) == 0 {
					fmt.Fprintf(out, "No ingest actions recorded for run %s.\n", args[0])
					return nil
				}
				rows := make([][]string, 0, len(actions))
				for _, action := range actions {
					target := action.Destination
					if action.Conflict != "" {
						target = action.Conflict
					}
					rows = append(rows, []string{string(action.Status), action.Source, target, action.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Status", "Source", "Target", "Detail"}, rows))
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				duration := ""
				if run.Finished() {
					duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Kind,
					run.Status,
					duration,
					run.ID,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Started", "Kind", "Status", "Duration", "Run ID"}, rows, 4))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}
