// Package engine provides the year-by-year simulation loop.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/config"
	"github.com/talgya/cursus/internal/social"
)

// Engine drives a simulation forward one year at a time. Each year depends
// only on the terminal state of the year before it.
type Engine struct {
	Sim *Simulation

	// Every is the period, in years, of the OnEpoch callback. Zero disables it.
	Every int

	// Callbacks, populated during setup.
	OnYear  func(stats YearStats) error // Every year
	OnEpoch func(stats YearStats) error // Every Every years
}

// NewEngine creates an engine around sim.
func NewEngine(sim *Simulation) *Engine {
	return &Engine{Sim: sim}
}

// Run advances the simulation by years, continuing from the last year
// processed. It stops at the first invariant violation or callback error.
func (e *Engine) Run(years int) error {
	slog.Info("simulation engine started",
		"run_id", e.Sim.ID,
		"seed", e.Sim.Stream.Seed(),
		"from_year", e.Sim.Year+1,
		"years", years,
	)

	for i := 0; i < years; i++ {
		if err := e.step(); err != nil {
			return err
		}
	}

	slog.Info("simulation engine stopped",
		"run_id", e.Sim.ID,
		"year", e.Sim.Year,
		"psi", e.Sim.PSI,
		"population", e.Sim.Landscape.Population(),
	)
	return nil
}

// step advances the simulation by one year.
func (e *Engine) step() error {
	year := e.Sim.Year + 1
	stats, err := e.Sim.SimulateYear(year)
	if err != nil {
		return err
	}

	if e.OnYear != nil {
		if err := e.OnYear(stats); err != nil {
			return fmt.Errorf("year %d callback: %w", year, err)
		}
	}
	if e.Every > 0 && year%e.Every == 0 && e.OnEpoch != nil {
		if err := e.OnEpoch(stats); err != nil {
			return fmt.Errorf("year %d epoch callback: %w", year, err)
		}
	}
	return nil
}

// Result summarizes a finished run.
type Result struct {
	RunID           string                    `json:"run_id"`
	Seed            int64                     `json:"seed"`
	Years           int                       `json:"years"`
	FinalPSI        int                       `json:"final_psi"`
	AverageFillRate map[agents.Office]float64 `json:"average_fill_rate"`
	Final           social.Snapshot           `json:"final"`
	History         []YearStats               `json:"history"`
}

// Result summarizes the simulation as it stands.
func (s *Simulation) Result() Result {
	return Result{
		RunID:           s.ID.String(),
		Seed:            s.Stream.Seed(),
		Years:           s.Year,
		FinalPSI:        s.PSI,
		AverageFillRate: AverageFillRates(s.History),
		Final:           s.Snapshot(),
		History:         s.History,
	}
}

// RunSimulation initializes a landscape from cfg and simulates numYears
// consecutive years starting at year 1.
func RunSimulation(numYears int, cfg config.Config) (Result, error) {
	if numYears < 0 {
		return Result{}, fmt.Errorf("%w: years must be >= 0, got %d", config.ErrInvalid, numYears)
	}
	sim, err := New(cfg)
	if err != nil {
		return Result{}, err
	}
	if err := NewEngine(sim).Run(numYears); err != nil {
		return sim.Result(), err
	}
	return sim.Result(), nil
}
