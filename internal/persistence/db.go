// Package persistence records finished runs in SQLite. It is a reporting
// sink: nothing is ever loaded back into a running simulation.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/config"
	"github.com/talgya/cursus/internal/engine"
)

// DB wraps a SQLite connection for run history.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		years INTEGER NOT NULL,
		final_psi INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		config_json TEXT NOT NULL,
		average_fill_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS year_stats (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		year INTEGER NOT NULL,
		psi INTEGER NOT NULL,
		population INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		influx INTEGER NOT NULL,
		elected INTEGER NOT NULL,
		promotions INTEGER NOT NULL,
		occupancy_json TEXT NOT NULL,
		seated_json TEXT NOT NULL,
		fill_rate_json TEXT NOT NULL,
		PRIMARY KEY (run_id, year)
	);

	CREATE TABLE IF NOT EXISTS politicians (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		life_expectancy INTEGER NOT NULL,
		office TEXT NOT NULL,
		tenure INTEGER NOT NULL,
		last_consul_year INTEGER,
		born_year INTEGER NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_politicians_office ON politicians(run_id, office);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID              string                    `db:"id" json:"id"`
	Seed            int64                     `db:"seed" json:"seed"`
	Years           int                       `db:"years" json:"years"`
	FinalPSI        int                       `db:"final_psi" json:"final_psi"`
	CreatedAt       string                    `db:"created_at" json:"created_at"`
	AverageFillJSON string                    `db:"average_fill_json" json:"-"`
	AverageFillRate map[agents.Office]float64 `db:"-" json:"average_fill_rate"`
}

type yearRow struct {
	RunID         string `db:"run_id"`
	Year          int    `db:"year"`
	PSI           int    `db:"psi"`
	Population    int    `db:"population"`
	Deaths        int    `db:"deaths"`
	Influx        int    `db:"influx"`
	Elected       int    `db:"elected"`
	Promotions    int    `db:"promotions"`
	OccupancyJSON string `db:"occupancy_json"`
	SeatedJSON    string `db:"seated_json"`
	FillRateJSON  string `db:"fill_rate_json"`
}

type politicianRow struct {
	RunID          string `db:"run_id"`
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Age            int    `db:"age"`
	LifeExpectancy int    `db:"life_expectancy"`
	Office         string `db:"office"`
	Tenure         int    `db:"tenure"`
	LastConsulYear *int   `db:"last_consul_year"`
	BornYear       int    `db:"born_year"`
}

// SaveRun writes a finished run: its summary, every year's statistics and
// the final landscape.
func (db *DB) SaveRun(res engine.Result, cfg config.Config) error {
	slog.Info("saving run", "run_id", res.RunID, "years", len(res.History))

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	fillJSON, err := json.Marshal(res.AverageFillRate)
	if err != nil {
		return fmt.Errorf("encode fill rates: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO runs
		(id, seed, years, final_psi, created_at, config_json, average_fill_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.Seed, res.Years, res.FinalPSI,
		time.Now().UTC().Format(time.RFC3339), string(cfgJSON), string(fillJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM year_stats WHERE run_id = ?", res.RunID); err != nil {
		return err
	}
	stmt, err := tx.Preparex(`INSERT INTO year_stats
		(run_id, year, psi, population, deaths, influx, elected, promotions,
		 occupancy_json, seated_json, fill_rate_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ys := range res.History {
		occJSON, err := json.Marshal(ys.Occupancy)
		if err != nil {
			return fmt.Errorf("encode occupancy year %d: %w", ys.Year, err)
		}
		seatedJSON, err := json.Marshal(ys.Seated)
		if err != nil {
			return fmt.Errorf("encode seats year %d: %w", ys.Year, err)
		}
		rateJSON, err := json.Marshal(ys.FillRate)
		if err != nil {
			return fmt.Errorf("encode fill rate year %d: %w", ys.Year, err)
		}
		_, err = stmt.Exec(
			res.RunID, ys.Year, ys.PSI, ys.Population, ys.Deaths, ys.Influx,
			ys.Elected, ys.Promotions,
			string(occJSON), string(seatedJSON), string(rateJSON),
		)
		if err != nil {
			return fmt.Errorf("insert year %d: %w", ys.Year, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM politicians WHERE run_id = ?", res.RunID); err != nil {
		return err
	}
	for _, o := range agents.Offices {
		for _, p := range res.Final.Benches[o] {
			_, err := tx.NamedExec(`INSERT INTO politicians
				(run_id, id, name, age, life_expectancy, office, tenure, last_consul_year, born_year)
				VALUES (:run_id, :id, :name, :age, :life_expectancy, :office, :tenure, :last_consul_year, :born_year)`,
				politicianRow{
					RunID:          res.RunID,
					ID:             int64(p.ID),
					Name:           p.Name,
					Age:            p.Age,
					LifeExpectancy: p.LifeExpectancy,
					Office:         p.Office.String(),
					Tenure:         p.Tenure,
					LastConsulYear: p.LastConsulYear,
					BornYear:       p.BornYear,
				})
			if err != nil {
				return fmt.Errorf("insert politician %d: %w", p.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("run saved", "run_id", res.RunID)
	return nil
}

// ListRuns returns stored runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunSummary, error) {
	var runs []RunSummary
	err := db.conn.Select(&runs,
		`SELECT id, seed, years, final_psi, created_at, average_fill_json
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		if err := json.Unmarshal([]byte(runs[i].AverageFillJSON), &runs[i].AverageFillRate); err != nil {
			return nil, fmt.Errorf("decode run %s: %w", runs[i].ID, err)
		}
	}
	return runs, nil
}

// YearStats returns the stored yearly series of a run in year order.
func (db *DB) YearStats(runID string) ([]engine.YearStats, error) {
	var rows []yearRow
	err := db.conn.Select(&rows,
		"SELECT * FROM year_stats WHERE run_id = ? ORDER BY year",
		runID,
	)
	if err != nil {
		return nil, err
	}

	out := make([]engine.YearStats, 0, len(rows))
	for _, r := range rows {
		ys := engine.YearStats{
			Year:       r.Year,
			PSI:        r.PSI,
			Population: r.Population,
			Deaths:     r.Deaths,
			Influx:     r.Influx,
			Elected:    r.Elected,
			Promotions: r.Promotions,
		}
		if err := json.Unmarshal([]byte(r.OccupancyJSON), &ys.Occupancy); err != nil {
			return nil, fmt.Errorf("decode occupancy year %d: %w", r.Year, err)
		}
		if err := json.Unmarshal([]byte(r.SeatedJSON), &ys.Seated); err != nil {
			return nil, fmt.Errorf("decode seats year %d: %w", r.Year, err)
		}
		if err := json.Unmarshal([]byte(r.FillRateJSON), &ys.FillRate); err != nil {
			return nil, fmt.Errorf("decode fill rate year %d: %w", r.Year, err)
		}
		out = append(out, ys)
	}
	return out, nil
}

// Politicians returns the final landscape of a run.
func (db *DB) Politicians(runID string) ([]agents.Politician, error) {
	var rows []politicianRow
	err := db.conn.Select(&rows,
		"SELECT * FROM politicians WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, err
	}

	out := make([]agents.Politician, 0, len(rows))
	for _, r := range rows {
		office, err := agents.ParseOffice(r.Office)
		if err != nil {
			return nil, fmt.Errorf("politician %d: %w", r.ID, err)
		}
		out = append(out, agents.Politician{
			ID:             agents.PoliticianID(r.ID),
			Name:           r.Name,
			Age:            r.Age,
			LifeExpectancy: r.LifeExpectancy,
			Office:         office,
			Tenure:         r.Tenure,
			LastConsulYear: r.LastConsulYear,
			BornYear:       r.BornYear,
		})
	}
	return out, nil
}
