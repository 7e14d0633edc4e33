// Package sqlite es el almacenamiento embebido del diario: mismas
// operaciones que el backend CSV (cargar, agregar, reemplazar por mascota y
// categoría) sobre una tabla por dataset, sin el costo de reescribir el
// archivo completo en cada guardado.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS basic_info (
	pet_name     TEXT NOT NULL,
	birth_date   TEXT NOT NULL,
	birth_time   TEXT NOT NULL DEFAULT '',
	birth_place  TEXT NOT NULL DEFAULT '',
	weather      TEXT NOT NULL DEFAULT '',
	birth_weight TEXT NOT NULL DEFAULT '',
	birth_height TEXT NOT NULL DEFAULT '',
	message      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS handprint (
	pet_name TEXT NOT NULL,
	date     TEXT NOT NULL,
	comment  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS milestones (
	pet_name    TEXT NOT NULL,
	date        TEXT NOT NULL,
	description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS birthday (
	pet_name TEXT NOT NULL,
	message  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS memo_log (
	pet_name TEXT NOT NULL,
	date     TEXT NOT NULL,
	text     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS growth_log (
	pet_name         TEXT NOT NULL,
	ts               TEXT NOT NULL,
	days_since_birth INTEGER NOT NULL,
	meal             TEXT NOT NULL DEFAULT '',
	grams            INTEGER NOT NULL DEFAULT 0,
	potty            TEXT NOT NULL DEFAULT '',
	walk             TEXT NOT NULL DEFAULT '',
	sleep            TEXT NOT NULL DEFAULT '',
	memo             TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS health_log (
	pet_name      TEXT NOT NULL,
	date          TEXT NOT NULL,
	weight_kg     REAL NOT NULL,
	temperature_c REAL,
	walk_count    INTEGER
);
CREATE INDEX IF NOT EXISTS idx_growth_log_pet ON growth_log(pet_name);
CREATE INDEX IF NOT EXISTS idx_health_log_pet ON health_log(pet_name);
`

// Open abre (o crea) la base embebida y aplica el esquema. Las pragmas
// siguen el mismo perfil que usamos en otras herramientas locales:
// busy_timeout para convivir con otra pestaña/proceso, WAL para que las
// lecturas no bloqueen escrituras.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: schema apply: %w", err)
	}

	return db, nil
}

// allTables en el orden del esquema.
var allTables = []string{
	"basic_info", "handprint", "milestones", "birthday",
	"memo_log", "growth_log", "health_log",
}

// Reset vacía todas las tablas del diario en una transacción. Lo usa la
// migración desde CSV: el import siempre parte de base vacía, así
// re-ejecutarlo no duplica filas.
func Reset(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: reset begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range allTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: reset %s: %w", table, err)
		}
	}
	return tx.Commit()
}
