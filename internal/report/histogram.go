package report

// Histogram bucket defaults for age distributions.
const (
	HistogramMin   = 25
	HistogramMax   = 80
	HistogramWidth = 5
)

// Bin is one histogram bucket covering ages [Lo, Hi).
type Bin struct {
	Lo    int `json:"lo"`
	Hi    int `json:"hi"`
	Count int `json:"count"`
}

// AgeHistogram buckets ages into bins of width years between lo and hi.
// Ages below lo land in the first bin and ages at or above hi in the last.
func AgeHistogram(ages []int, lo, hi, width int) []Bin {
	if width <= 0 || hi <= lo {
		return nil
	}
	n := (hi - lo + width - 1) / width
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + i*width
		bins[i].Hi = bins[i].Lo + width
	}
	for _, a := range ages {
		i := (a - lo) / width
		if a < lo {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}
