// Package report renders finished and in-progress runs for people: yearly
// summary lines, the final tally, and per-office age histograms. It only
// reads engine output and never touches a live landscape.
package report

import (
	"encoding/json"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/engine"
	"github.com/talgya/cursus/internal/social"
)

const barWidth = 40

// Reporter writes human-readable reports to w.
type Reporter struct {
	w io.Writer
	p *message.Printer
}

// NewReporter creates a reporter using English number formatting.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, p: message.NewPrinter(language.English)}
}

// Year writes a one-line summary of a simulated year.
func (r *Reporter) Year(s engine.YearStats) {
	r.p.Fprintf(r.w, "year %4d  psi %8d  deaths %3d  influx %3d  elected %3d |",
		s.Year, s.PSI, s.Deaths, s.Influx, s.Elected)
	for _, o := range agents.Offices {
		r.p.Fprintf(r.w, " %s %3.0f%%", abbrev(o), s.FillRate[o]*100)
	}
	r.p.Fprintln(r.w)
}

// Summary writes the final tally of a run.
func (r *Reporter) Summary(res engine.Result) {
	r.p.Fprintf(r.w, "run %s (seed %d)\n", res.RunID, res.Seed)
	r.p.Fprintf(r.w, "years simulated: %d\n", res.Years)
	r.p.Fprintf(r.w, "final PSI: %d\n", res.FinalPSI)
	r.p.Fprintln(r.w, "average fill rate:")
	for _, o := range agents.Offices {
		r.p.Fprintf(r.w, "  %-9s %6.2f%%  (%d/%d seated at end)\n",
			o, res.AverageFillRate[o]*100, res.Final.Occupancy(o), res.Final.Capacity[o])
	}
}

// Histograms writes an age histogram for each office of snap.
func (r *Reporter) Histograms(snap social.Snapshot) {
	for _, o := range agents.Offices {
		bins := AgeHistogram(snap.Ages(o), HistogramMin, HistogramMax, HistogramWidth)
		r.p.Fprintf(r.w, "%s (n=%d)\n", o, snap.Occupancy(o))
		peak := 0
		for _, b := range bins {
			peak = max(peak, b.Count)
		}
		for _, b := range bins {
			r.p.Fprintf(r.w, "  %2d-%2d | %s %d\n", b.Lo, b.Hi-1, bar(b.Count, peak), b.Count)
		}
	}
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func bar(n, peak int) string {
	if peak == 0 || n == 0 {
		return ""
	}
	width := n * barWidth / peak
	if width == 0 {
		width = 1
	}
	return strings.Repeat("#", width)
}

func abbrev(o agents.Office) string {
	switch o {
	case agents.OfficeQuaestor:
		return "Q"
	case agents.OfficeAedile:
		return "A"
	case agents.OfficePraetor:
		return "P"
	case agents.OfficeConsul:
		return "C"
	}
	return "-"
}
