// Package record optionally persists solve history to SQLite, the way the
// teacher's optim.RecordPointPos and swarm.go's initdb/updateDb write every
// evaluated point to a database/sql transaction. Unlike the teacher, which
// opened a table per concern (particles, particles_meshed, particles_best,
// best), this module keeps one generations table keyed by a run id, since
// the spec only needs the convergence trace (best fitness per generation),
// not full per-particle history.
package record

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Recorder writes one row per generation to a SQLite database. The zero
// value is not valid; use Open.
type Recorder struct {
	db *sql.DB
}

// Open creates (or reuses) the sqlite3 database at path and ensures the
// generations table exists.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	const ddl = `CREATE TABLE IF NOT EXISTS generations (
		run_id TEXT, generation INTEGER, best_fitness REAL
	);`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, err
	}
	return &Recorder{db: db}, nil
}

// Close releases the underlying database handle.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// RecordGeneration appends one (runID, generation, bestFitness) row inside
// its own transaction, mirroring RecordPointPos's create-table-then-insert
// shape.
func (r *Recorder) RecordGeneration(runID string, generation int, bestFitness float64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO generations VALUES (?,?,?);")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(runID, generation, bestFitness); err != nil {
		tx.Rollback()
		return fmt.Errorf("record: write failed: %w", err)
	}
	return tx.Commit()
}

// History returns the recorded (generation, bestFitness) trace for runID in
// generation order.
func (r *Recorder) History(runID string) ([]int, []float64, error) {
	rows, err := r.db.Query(
		"SELECT generation, best_fitness FROM generations WHERE run_id = ? ORDER BY generation;",
		runID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var gens []int
	var fits []float64
	for rows.Next() {
		var g int
		var f float64
		if err := rows.Scan(&g, &f); err != nil {
			return nil, nil, err
		}
		gens = append(gens, g)
		fits = append(fits, f)
	}
	return gens, fits, rows.Err()
}
