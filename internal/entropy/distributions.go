package entropy

import "math"

// LifeExpectancy is a normal distribution truncated to [Min, Max] years.
type LifeExpectancy struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// DefaultLifeExpectancy is N(55, 10) truncated to [25, 80].
func DefaultLifeExpectancy() LifeExpectancy {
	return LifeExpectancy{Mean: 55, StdDev: 10, Min: 25, Max: 80}
}

// Draw returns one life expectancy in whole years.
func (d LifeExpectancy) Draw(s *Stream) int {
	return s.TruncatedNormalInt(d.Mean, d.StdDev, d.Min, d.Max)
}

// Influx is the normal distribution of fresh candidates per year,
// truncated below at zero.
type Influx struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// DefaultInflux is N(15, 5) truncated at 0.
func DefaultInflux() Influx {
	return Influx{Mean: 15, StdDev: 5}
}

// Draw returns a non-negative candidate count. Negative draws are rejected
// before rounding; accepted draws are rounded to the nearest integer.
func (d Influx) Draw(s *Stream) int {
	for i := 0; i < maxRejections; i++ {
		v := d.Mean + d.StdDev*s.Norm()
		if v >= 0 {
			return int(math.Round(v))
		}
	}
	if d.Mean > 0 {
		return int(math.Round(d.Mean))
	}
	return 0
}
