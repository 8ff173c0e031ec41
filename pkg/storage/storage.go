package storage

import (
	"context"
	"database/sql"

	"github.com/sw33tLie/platescope/pkg/vehicle"

	_ "modernc.org/sqlite"
)

// DB is the SQLite record store.
type DB struct {
	sql   *sql.DB
	runID string
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS vehicles (
  id              INTEGER PRIMARY KEY,
  placa           TEXT NOT NULL UNIQUE,
  marca           TEXT,
  modelo          TEXT,
  anio            TEXT,
  color           TEXT,
  clase           TEXT,
  fecha_matricula TEXT,
  anio_matricula  TEXT,
  servicio        TEXT,
  fecha_caducidad TEXT,
  polarizado      TEXT,
  run_id          TEXT,
  first_seen_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_vehicles_prefix ON vehicles(substr(placa, 1, 3));
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// SetRunID tags every record appended from now on with id.
func (d *DB) SetRunID(id string) {
	d.runID = id
}

func (d *DB) LoadExisting(ctx context.Context) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT placa FROM vehicles")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plates := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		plates = append(plates, p)
	}
	return plates, rows.Err()
}

// Append inserts r. A plate that is already stored is left untouched.
func (d *DB) Append(ctx context.Context, r vehicle.Record) error {
	_, err := d.sql.ExecContext(ctx, `INSERT INTO vehicles(placa, marca, modelo, anio, color, clase, fecha_matricula, anio_matricula, servicio, fecha_caducidad, polarizado, run_id, first_seen_at) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP) ON CONFLICT(placa) DO NOTHING`,
		r.Plate, nullIfEmpty(r.Make), nullIfEmpty(r.Model), nullIfEmpty(r.Year), nullIfEmpty(r.Color), nullIfEmpty(r.Class),
		nullIfEmpty(r.RegistrationDate), nullIfEmpty(r.RegistrationYear), nullIfEmpty(r.Service), nullIfEmpty(r.ExpiryDate),
		nullIfEmpty(r.Tint), nullIfEmpty(d.runID))
	return err
}

func (d *DB) Records(ctx context.Context) ([]vehicle.Record, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT placa, marca, modelo, anio, color, clase, fecha_matricula, anio_matricula, servicio, fecha_caducidad, polarizado FROM vehicles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []vehicle.Record{}
	for rows.Next() {
		var plate string
		var f [10]sql.NullString
		if err := rows.Scan(&plate, &f[0], &f[1], &f[2], &f[3], &f[4], &f[5], &f[6], &f[7], &f[8], &f[9]); err != nil {
			return nil, err
		}
		out = append(out, vehicle.Record{
			Plate:            plate,
			Make:             f[0].String,
			Model:            f[1].String,
			Year:             f[2].String,
			Color:            f[3].String,
			Class:            f[4].String,
			RegistrationDate: f[5].String,
			RegistrationYear: f[6].String,
			Service:          f[7].String,
			ExpiryDate:       f[8].String,
			Tint:             f[9].String,
		})
	}
	return out, rows.Err()
}

// RunCounts returns how many records each run added, most recent run first.
func (d *DB) RunCounts(ctx context.Context) ([]RunCount, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT COALESCE(run_id, ''), COUNT(*), MIN(first_seen_at)
		FROM vehicles
		GROUP BY run_id
		ORDER BY MIN(id) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunCount
	for rows.Next() {
		var rc RunCount
		if err := rows.Scan(&rc.RunID, &rc.Count, &rc.StartedAt); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// RunCount is the number of records one run persisted.
type RunCount struct {
	RunID     string
	Count     int
	StartedAt string
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
