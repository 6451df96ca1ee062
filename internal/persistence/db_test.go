package persistence

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/config"
	"github.com/talgya/cursus/internal/engine"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)
	cfg := config.Default()
	cfg.Seed = 5

	res, err := engine.RunSimulation(30, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRun(res, cfg); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != res.RunID || r.Seed != 5 || r.Years != 30 || r.FinalPSI != res.FinalPSI {
		t.Errorf("run row %+v does not match result", r)
	}
	for _, o := range agents.Offices {
		if r.AverageFillRate[o] != res.AverageFillRate[o] {
			t.Errorf("%v average fill %v, want %v", o, r.AverageFillRate[o], res.AverageFillRate[o])
		}
	}

	series, err := db.YearStats(res.RunID)
	if err != nil {
		t.Fatalf("YearStats: %v", err)
	}
	if len(series) != 30 {
		t.Fatalf("got %d years, want 30", len(series))
	}
	for i, ys := range series {
		want := res.History[i]
		if ys.Year != want.Year || ys.PSI != want.PSI || ys.Deaths != want.Deaths {
			t.Errorf("year %d: got %+v, want %+v", want.Year, ys, want)
		}
		if !reflect.DeepEqual(ys.Occupancy, want.Occupancy) || !reflect.DeepEqual(ys.FillRate, want.FillRate) {
			t.Errorf("year %d: occupancy/fill mismatch", want.Year)
		}
	}

	people, err := db.Politicians(res.RunID)
	if err != nil {
		t.Fatalf("Politicians: %v", err)
	}
	total := 0
	for _, o := range agents.Offices {
		total += res.Final.Occupancy(o)
	}
	if len(people) != total {
		t.Fatalf("got %d politicians, want %d", len(people), total)
	}
	for _, p := range people {
		if !p.Office.Valid() {
			t.Errorf("politician %d stored without an office", p.ID)
		}
	}
}

func TestSaveRunReplaces(t *testing.T) {
	db := openTestDB(t)
	cfg := config.Default()

	res, err := engine.RunSimulation(10, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRun(res, cfg); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRun(res, cfg); err != nil {
		t.Fatalf("second SaveRun: %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs after saving twice, want 1", len(runs))
	}
	series, err := db.YearStats(res.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 10 {
		t.Errorf("got %d years after saving twice, want 10", len(series))
	}
}

func TestSaveRunRejectsUnencodableYear(t *testing.T) {
	db := openTestDB(t)
	cfg := config.Default()

	res, err := engine.RunSimulation(3, cfg)
	if err != nil {
		t.Fatal(err)
	}
	res.History[1].FillRate[agents.OfficeConsul] = math.NaN()

	if err := db.SaveRun(res, cfg); err == nil {
		t.Fatal("SaveRun stored a year whose fill rate cannot be encoded")
	}
	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("failed save left %d runs behind", len(runs))
	}
}

func TestUnknownRun(t *testing.T) {
	db := openTestDB(t)
	series, err := db.YearStats("missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 0 {
		t.Errorf("got %d years for an unknown run", len(series))
	}
}
