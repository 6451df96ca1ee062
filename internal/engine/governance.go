// Elections: candidate pools and seat filling, senior offices first.
package engine

import (
	"github.com/talgya/cursus/internal/agents"
)

type electionOutcome struct {
	elected    int
	promotions int
	perOffice  map[agents.Office]int
}

// resolveElections fills open seats in every office, Consul down to
// Quaestor. A politician wins at most one seat per year. A promoted
// politician keeps the old seat until Reconcile runs, so lower offices see
// no new vacancy this year.
func (s *Simulation) resolveElections(fresh []*agents.Politician, year int) (electionOutcome, error) {
	out := electionOutcome{perOffice: make(map[agents.Office]int, len(agents.Offices))}
	placed := make(map[*agents.Politician]bool)

	for _, office := range agents.ElectionOrder {
		pool := s.candidatePool(office, fresh, year, placed)
		s.Stream.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		open := s.Landscape.Vacancies(office)
		if open > len(pool) {
			open = len(pool)
		}
		for _, p := range pool[:open] {
			if p.Elect(office, year) {
				out.promotions++
			}
			if err := s.Landscape.Seat(p, office); err != nil {
				return out, invariantf("year %d: %v", year, err)
			}
			placed[p] = true
			out.elected++
			out.perOffice[office]++
		}
	}
	return out, nil
}

// candidatePool gathers everyone who may stand for office this year. Fresh
// candidates only ever qualify for the entry office.
func (s *Simulation) candidatePool(office agents.Office, fresh []*agents.Politician, year int, placed map[*agents.Politician]bool) []*agents.Politician {
	var pool []*agents.Politician
	if office == agents.OfficeQuaestor {
		for _, p := range fresh {
			if !placed[p] && agents.Electable(p, office, year, s.Rules) {
				pool = append(pool, p)
			}
		}
	}
	for _, p := range s.Landscape.All() {
		if !placed[p] && agents.Electable(p, office, year, s.Rules) {
			pool = append(pool, p)
		}
	}
	return pool
}
