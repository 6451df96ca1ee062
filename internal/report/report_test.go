package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/config"
	"github.com/talgya/cursus/internal/engine"
)

func TestAgeHistogram(t *testing.T) {
	bins := AgeHistogram([]int{20, 25, 29, 30, 44, 79, 80, 95}, 25, 80, 5)
	if len(bins) != 11 {
		t.Fatalf("got %d bins, want 11", len(bins))
	}
	if bins[0].Lo != 25 || bins[0].Hi != 30 || bins[10].Lo != 75 || bins[10].Hi != 80 {
		t.Errorf("bin edges: first [%d, %d) last [%d, %d)", bins[0].Lo, bins[0].Hi, bins[10].Lo, bins[10].Hi)
	}

	want := map[int]int{0: 3, 1: 1, 3: 1, 10: 3}
	total := 0
	for i, b := range bins {
		total += b.Count
		if b.Count != want[i] {
			t.Errorf("bin %d [%d, %d) = %d, want %d", i, b.Lo, b.Hi, b.Count, want[i])
		}
	}
	if total != 8 {
		t.Errorf("histogram counted %d ages, want 8", total)
	}

	if AgeHistogram([]int{30}, 25, 80, 0) != nil {
		t.Error("zero width should yield no bins")
	}
}

func TestReporter(t *testing.T) {
	res, err := engine.RunSimulation(20, config.Default())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	rep := NewReporter(&buf)
	rep.Year(res.History[0])
	rep.Summary(res)
	rep.Histograms(res.Final)
	out := buf.String()

	for _, want := range []string{"year    1", "final PSI:", "average fill rate:", "quaestor", "consul (n="} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	for _, o := range agents.Offices {
		if !strings.Contains(out, o.String()) {
			t.Errorf("report missing office %v", o)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	res, err := engine.RunSimulation(5, config.Default())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		FinalPSI        int                `json:"final_psi"`
		AverageFillRate map[string]float64 `json:"average_fill_rate"`
		History         []json.RawMessage  `json:"history"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.FinalPSI != res.FinalPSI || len(decoded.History) != 5 {
		t.Errorf("decoded psi %d history %d, want %d 5", decoded.FinalPSI, len(decoded.History), res.FinalPSI)
	}
	if _, ok := decoded.AverageFillRate["praetor"]; !ok {
		t.Errorf("average_fill_rate keys = %v, want office names", decoded.AverageFillRate)
	}
}
