// Package social holds the political landscape: which politicians sit in
// which office, under each office's seat limit.
package social

import (
	"errors"
	"fmt"
	"slices"

	"github.com/talgya/cursus/internal/agents"
)

// ErrOfficeFull is returned when seating would exceed an office's capacity.
var ErrOfficeFull = errors.New("office full")

// Landscape maps each office to the ordered politicians holding it. It
// exclusively owns those politicians; anyone dropped from every bench is
// out of the simulation.
type Landscape struct {
	capacity map[agents.Office]int
	benches  map[agents.Office][]*agents.Politician
}

// NewLandscape creates an empty landscape with the given seat limits.
func NewLandscape(capacity map[agents.Office]int) *Landscape {
	l := &Landscape{
		capacity: make(map[agents.Office]int, len(agents.Offices)),
		benches:  make(map[agents.Office][]*agents.Politician, len(agents.Offices)),
	}
	for _, o := range agents.Offices {
		l.capacity[o] = capacity[o]
		l.benches[o] = nil
	}
	return l
}

// Capacity returns the seat limit of office.
func (l *Landscape) Capacity(office agents.Office) int {
	return l.capacity[office]
}

// Occupancy returns how many seats of office are filled.
func (l *Landscape) Occupancy(office agents.Office) int {
	return len(l.benches[office])
}

// Vacancies returns how many seats of office are open.
func (l *Landscape) Vacancies(office agents.Office) int {
	v := l.capacity[office] - len(l.benches[office])
	if v < 0 {
		return 0
	}
	return v
}

// Occupants returns a copy of office's bench in seating order.
func (l *Landscape) Occupants(office agents.Office) []*agents.Politician {
	return slices.Clone(l.benches[office])
}

// All returns every seated politician, junior offices first.
func (l *Landscape) All() []*agents.Politician {
	var out []*agents.Politician
	for _, o := range agents.Offices {
		out = append(out, l.benches[o]...)
	}
	return out
}

// Population returns the number of seated politicians.
func (l *Landscape) Population() int {
	n := 0
	for _, o := range agents.Offices {
		n += len(l.benches[o])
	}
	return n
}

// Seat appends p to office's bench. A seat p already holds on another
// bench is left in place and keeps counting against that office until
// Reconcile drops it, so a promotion opens its old seat only for the
// following year.
func (l *Landscape) Seat(p *agents.Politician, office agents.Office) error {
	if !office.Valid() {
		return fmt.Errorf("seat politician %d: invalid office %v", p.ID, office)
	}
	if slices.Contains(l.benches[office], p) {
		return nil
	}
	if len(l.benches[office]) >= l.capacity[office] {
		return fmt.Errorf("seat politician %d in %v: %w", p.ID, office, ErrOfficeFull)
	}
	l.benches[office] = append(l.benches[office], p)
	return nil
}

// RemoveIf drops every seated politician matching pred and returns them.
func (l *Landscape) RemoveIf(pred func(*agents.Politician) bool) []*agents.Politician {
	var removed []*agents.Politician
	for _, o := range agents.Offices {
		kept := l.benches[o][:0]
		for _, p := range l.benches[o] {
			if pred(p) {
				removed = append(removed, p)
			} else {
				kept = append(kept, p)
			}
		}
		clear(l.benches[o][len(kept):])
		l.benches[o] = kept
	}
	return removed
}

// Reconcile rebuilds every bench so it holds exactly the politicians whose
// Office names it. Stale memberships are dropped, politicians with no office
// leave the landscape, and seating order is preserved. It returns the
// number of stale memberships it repaired.
func (l *Landscape) Reconcile() int {
	seen := make(map[*agents.Politician]bool)
	rebuilt := make(map[agents.Office][]*agents.Politician, len(agents.Offices))
	repaired := 0
	for _, o := range agents.Offices {
		for _, p := range l.benches[o] {
			if seen[p] || p.Office != o {
				repaired++
				continue
			}
			seen[p] = true
			rebuilt[o] = append(rebuilt[o], p)
		}
	}
	// A politician can sit on a stale bench and still hold a real office
	// it was never seated in; place it where it belongs.
	for _, o := range agents.Offices {
		for _, p := range l.benches[o] {
			if !seen[p] && p.Office.Valid() {
				seen[p] = true
				rebuilt[p.Office] = append(rebuilt[p.Office], p)
			}
		}
	}
	for _, o := range agents.Offices {
		l.benches[o] = rebuilt[o]
	}
	return repaired
}

// Check verifies the landscape invariants: no bench over capacity, every
// politician's Office matching its bench, and no politician on two benches.
func (l *Landscape) Check() error {
	where := make(map[*agents.Politician]agents.Office)
	for _, o := range agents.Offices {
		if n := len(l.benches[o]); n > l.capacity[o] {
			return fmt.Errorf("%v holds %d politicians, capacity %d", o, n, l.capacity[o])
		}
		for _, p := range l.benches[o] {
			if prev, dup := where[p]; dup {
				return fmt.Errorf("politician %d sits in both %v and %v", p.ID, prev, o)
			}
			where[p] = o
			if p.Office != o {
				return fmt.Errorf("politician %d sits in %v but holds %v", p.ID, o, p.Office)
			}
		}
	}
	return nil
}
