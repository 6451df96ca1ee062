package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/persistence"
	"github.com/talgya/cursus/internal/report"
)

func openHistory(cmd *cobra.Command) (*persistence.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("no run history: set --db or db_path")
	}
	return persistence.Open(cfg.DBPath)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := db.ListRuns(limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return report.WriteJSON(out, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tSEED\tYEARS\tPSI\tQ\tA\tP\tC\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d", r.ID, r.Seed, r.Years, r.FinalPSI)
				for _, o := range agents.Offices {
					fmt.Fprintf(tw, "\t%.2f", r.AverageFillRate[o])
				}
				fmt.Fprintf(tw, "\t%s\n", r.CreatedAt)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the yearly series of a recorded run",
		Long: `Print the yearly series of a recorded run.

Examples:
  cursus show <run-id> --db runs.db                 # one line per year
  cursus show <run-id> --db runs.db --politicians   # final office holders`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			series, err := db.YearStats(args[0])
			if err != nil {
				return fmt.Errorf("load run %s: %w", args[0], err)
			}
			if len(series) == 0 {
				return fmt.Errorf("run %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			jsonOut, _ := cmd.Flags().GetBool("json")
			if people, _ := cmd.Flags().GetBool("politicians"); people {
				roster, err := db.Politicians(args[0])
				if err != nil {
					return fmt.Errorf("load politicians of %s: %w", args[0], err)
				}
				if jsonOut {
					return report.WriteJSON(out, roster)
				}
				return writeRoster(out, roster)
			}

			if jsonOut {
				return report.WriteJSON(out, series)
			}
			rep := report.NewReporter(out)
			for _, ys := range series {
				rep.Year(ys)
			}
			return nil
		},
	}
	cmd.Flags().Bool("politicians", false, "Print the final office holders instead of the yearly series")
	return cmd
}

func writeRoster(w io.Writer, roster []agents.Politician) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tOFFICE\tAGE\tTENURE\tLIFE")
	for _, p := range roster {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n", p.ID, p.Name, p.Office, p.Age, p.Tenure, p.LifeExpectancy)
	}
	return tw.Flush()
}
