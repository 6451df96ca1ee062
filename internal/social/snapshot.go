package social

import (
	"github.com/talgya/cursus/internal/agents"
)

// Snapshot is a detached, read-only copy of a landscape. Reporters and the
// persistence layer consume snapshots so they can never mutate a live run.
type Snapshot struct {
	Year     int                                  `json:"year"`
	Capacity map[agents.Office]int                `json:"capacity"`
	Benches  map[agents.Office][]agents.Politician `json:"benches"`
}

// Snapshot copies the landscape as of year.
func (l *Landscape) Snapshot(year int) Snapshot {
	snap := Snapshot{
		Year:     year,
		Capacity: make(map[agents.Office]int, len(agents.Offices)),
		Benches:  make(map[agents.Office][]agents.Politician, len(agents.Offices)),
	}
	for _, o := range agents.Offices {
		snap.Capacity[o] = l.capacity[o]
		bench := make([]agents.Politician, 0, len(l.benches[o]))
		for _, p := range l.benches[o] {
			cp := *p
			if p.LastConsulYear != nil {
				y := *p.LastConsulYear
				cp.LastConsulYear = &y
			}
			bench = append(bench, cp)
		}
		snap.Benches[o] = bench
	}
	return snap
}

// Occupancy returns the number of filled seats in office.
func (s Snapshot) Occupancy(office agents.Office) int {
	return len(s.Benches[office])
}

// FillRate returns occupancy over capacity for office, 0 for a zero-seat office.
func (s Snapshot) FillRate(office agents.Office) float64 {
	c := s.Capacity[office]
	if c <= 0 {
		return 0
	}
	return float64(len(s.Benches[office])) / float64(c)
}

// Ages returns the ages of every politician in office.
func (s Snapshot) Ages(office agents.Office) []int {
	ages := make([]int, 0, len(s.Benches[office]))
	for _, p := range s.Benches[office] {
		ages = append(ages, p.Age)
	}
	return ages
}
