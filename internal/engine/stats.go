package engine

import (
	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/social"
)

// YearStats is the aggregate state of the landscape at the end of a year.
type YearStats struct {
	Year       int                       `json:"year"`
	PSI        int                       `json:"psi"`
	Population int                       `json:"population"`
	Deaths     int                       `json:"deaths"`
	Influx     int                       `json:"influx"`
	Elected    int                       `json:"elected"`
	Promotions int                       `json:"promotions"`
	Occupancy  map[agents.Office]int     `json:"occupancy"`
	Seated     map[agents.Office]int     `json:"seated"` // Seats won this year
	FillRate   map[agents.Office]float64 `json:"fill_rate"`
}

// UnfilledSeats returns the number of open seats across every office.
func UnfilledSeats(l *social.Landscape) int {
	n := 0
	for _, o := range agents.Offices {
		n += l.Capacity(o) - l.Occupancy(o)
	}
	return n
}

// UpdatePSI charges penalty for every unfilled seat. There is no floor.
func UpdatePSI(l *social.Landscape, psi, penalty int) int {
	for _, o := range agents.Offices {
		psi -= penalty * (l.Capacity(o) - l.Occupancy(o))
	}
	return psi
}

// FillRates returns occupancy over capacity per office.
func FillRates(l *social.Landscape) map[agents.Office]float64 {
	rates := make(map[agents.Office]float64, len(agents.Offices))
	for _, o := range agents.Offices {
		if c := l.Capacity(o); c > 0 {
			rates[o] = float64(l.Occupancy(o)) / float64(c)
		} else {
			rates[o] = 0
		}
	}
	return rates
}

// AverageFillRates averages each office's fill rate over history.
func AverageFillRates(history []YearStats) map[agents.Office]float64 {
	avg := make(map[agents.Office]float64, len(agents.Offices))
	for _, o := range agents.Offices {
		avg[o] = 0
	}
	if len(history) == 0 {
		return avg
	}
	for _, ys := range history {
		for _, o := range agents.Offices {
			avg[o] += ys.FillRate[o]
		}
	}
	for _, o := range agents.Offices {
		avg[o] /= float64(len(history))
	}
	return avg
}

func (s *Simulation) collectStats(year, deaths, influx int, outcome electionOutcome) YearStats {
	occ := make(map[agents.Office]int, len(agents.Offices))
	for _, o := range agents.Offices {
		occ[o] = s.Landscape.Occupancy(o)
	}
	return YearStats{
		Year:       year,
		PSI:        s.PSI,
		Population: s.Landscape.Population(),
		Deaths:     deaths,
		Influx:     influx,
		Elected:    outcome.elected,
		Promotions: outcome.promotions,
		Occupancy:  occ,
		Seated:     outcome.perOffice,
		FillRate:   FillRates(s.Landscape),
	}
}
