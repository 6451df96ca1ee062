package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/cursus/internal/engine"
	"github.com/talgya/cursus/internal/persistence"
	"github.com/talgya/cursus/internal/report"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation",
		Long: `Run a simulation and print a summary.

Examples:
  cursus run                        # 200 years, seed 42
  cursus run --years 500 --seed 7   # longer run, different stream
  cursus run --report-every 10      # print a line every 10 years
  cursus run --histogram            # final age distribution per office
  cursus run --db runs.db           # record the run in SQLite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			every, _ := cmd.Flags().GetInt("report-every")
			histogram, _ := cmd.Flags().GetBool("histogram")
			if cmd.Flags().Changed("years") {
				cfg.Years, _ = cmd.Flags().GetInt("years")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			if cfg.Seed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			sim, err := engine.New(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rep := report.NewReporter(out)
			eng := engine.NewEngine(sim)
			if !jsonOut && every > 0 {
				eng.Every = every
				eng.OnEpoch = func(stats engine.YearStats) error {
					rep.Year(stats)
					return nil
				}
			}

			if err := eng.Run(cfg.Years); err != nil {
				slog.Error("simulation aborted", "year", sim.Year+1, "error", err)
				return err
			}
			res := sim.Result()

			if cfg.DBPath != "" {
				db, err := persistence.Open(cfg.DBPath)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.SaveRun(res, cfg); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
			}

			if jsonOut {
				return report.WriteJSON(out, res)
			}
			rep.Summary(res)
			if histogram {
				fmt.Fprintln(out)
				rep.Histograms(res.Final)
			}
			return nil
		},
	}

	cmd.Flags().Int("years", 200, "Number of years to simulate")
	cmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().Int("report-every", 0, "Print a summary line every N years (0 = off)")
	cmd.Flags().Bool("histogram", false, "Print the final age histogram per office")

	return cmd
}
