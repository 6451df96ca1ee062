// Simulation ties together the landscape, the random stream and the
// metrics, and advances them one year at a time.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/config"
	"github.com/talgya/cursus/internal/entropy"
	"github.com/talgya/cursus/internal/social"
)

// Simulation holds the complete state of one run. Independent runs share
// nothing, so separate Simulations may be driven from separate goroutines.
type Simulation struct {
	ID        uuid.UUID
	Config    config.Config
	Rules     agents.Rules
	Landscape *social.Landscape
	PSI       int
	Year      int // Most recent year processed, 0 before the first step

	Stream  *entropy.Stream
	Spawner *agents.Spawner

	life   entropy.LifeExpectancy
	influx entropy.Influx

	// Statistics tracked per year.
	History []YearStats
}

// New validates cfg and returns a simulation with every office filled.
func New(cfg config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rules := cfg.Rules()
	stream := entropy.NewStream(cfg.Seed)
	sim := &Simulation{
		ID:      uuid.New(),
		Config:  cfg,
		Rules:   rules,
		PSI:     cfg.InitialPSI,
		Stream:  stream,
		Spawner: agents.NewSpawner(stream, cfg.LifeTable(), rules),
		life:    cfg.LifeTable(),
		influx:  cfg.InfluxDistribution(),
	}
	landscape, err := InitializeLandscape(sim.Spawner, rules)
	if err != nil {
		return nil, err
	}
	sim.Landscape = landscape
	return sim, nil
}

// InitializeLandscape seats a full bench in every office, with ages drawn
// from each office's initial age band.
func InitializeLandscape(spawner *agents.Spawner, rules agents.Rules) (*social.Landscape, error) {
	l := social.NewLandscape(rules.Capacities())
	for _, o := range agents.Offices {
		for _, p := range spawner.SpawnIncumbents(o) {
			if err := l.Seat(p, o); err != nil {
				return nil, fmt.Errorf("initialize landscape: %w", err)
			}
		}
	}
	slog.Debug("landscape initialized", "population", l.Population())
	return l, nil
}

// Snapshot returns a read-only copy of the current landscape.
func (s *Simulation) Snapshot() social.Snapshot {
	return s.Landscape.Snapshot(s.Year)
}

// SimulateYear advances the run by one year: mortality and aging, candidate
// generation, elections, reconciliation and metrics, in that order.
func (s *Simulation) SimulateYear(year int) (YearStats, error) {
	deaths := s.processMortality()

	influx := s.influx.Draw(s.Stream)
	if influx < 0 {
		return YearStats{}, invariantf("year %d: negative candidate influx %d", year, influx)
	}
	fresh := s.Spawner.SpawnCandidates(influx, year)

	outcome, err := s.resolveElections(fresh, year)
	if err != nil {
		return YearStats{}, err
	}

	if repaired := s.Landscape.Reconcile(); repaired > 0 {
		slog.Debug("landscape reconciled", "year", year, "repaired", repaired)
	}
	if err := s.Landscape.Check(); err != nil {
		return YearStats{}, invariantf("year %d: %v", year, err)
	}

	s.PSI = UpdatePSI(s.Landscape, s.PSI, s.Config.PSIPenalty)
	s.Year = year

	stats := s.collectStats(year, deaths, influx, outcome)
	s.History = append(s.History, stats)

	slog.Debug("year simulated",
		"year", year,
		"psi", stats.PSI,
		"deaths", deaths,
		"influx", influx,
		"elected", outcome.elected,
		"promotions", outcome.promotions,
		"fill_quaestor", fmt.Sprintf("%.2f", stats.FillRate[agents.OfficeQuaestor]),
		"fill_aedile", fmt.Sprintf("%.2f", stats.FillRate[agents.OfficeAedile]),
		"fill_praetor", fmt.Sprintf("%.2f", stats.FillRate[agents.OfficePraetor]),
		"fill_consul", fmt.Sprintf("%.2f", stats.FillRate[agents.OfficeConsul]),
	)
	return stats, nil
}
