// Population dynamics: yearly aging and death by life expectancy.
package engine

import (
	"log/slog"

	"github.com/talgya/cursus/internal/agents"
)

// processMortality removes every politician whose next birthday would pass
// their life expectancy, then ages the survivors by one year. It returns the
// number of deaths.
func (s *Simulation) processMortality() int {
	dead := s.Landscape.RemoveIf(func(p *agents.Politician) bool {
		return !p.OutlivesNextYear()
	})
	for _, p := range dead {
		if p.Office == agents.OfficeConsul {
			slog.Debug("consul died in office", "id", p.ID, "name", p.Name, "age", p.Age)
		}
	}
	for _, p := range s.Landscape.All() {
		p.AgeOneYear()
	}
	return len(dead)
}
