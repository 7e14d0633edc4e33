package sqlite

import (
	"context"
	"database/sql"
	"time"

	"pet-growth-diary/internal/domain/growthlog"
)

const timestampLayout = "2006-01-02 15:04:05"

type GrowthLogRepo struct {
	db *sql.DB
}

func NewGrowthLogRepo(db *sql.DB) *GrowthLogRepo {
	return &GrowthLogRepo{db: db}
}

func (r *GrowthLogRepo) Append(ctx context.Context, e growthlog.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO growth_log (
			pet_name, ts, days_since_birth,
			meal, grams, potty, walk, sleep, memo
		) VALUES (?,?,?,?,?,?,?,?,?)
	`,
		e.PetName,
		e.Timestamp.Format(timestampLayout),
		e.DaysSinceBirth,
		e.Meal,
		e.MealGrams,
		e.Potty,
		e.Walk,
		e.Sleep,
		e.Memo,
	)
	return err
}

func (r *GrowthLogRepo) ListByPet(ctx context.Context, petName string, f growthlog.Filter) ([]growthlog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_name, ts, days_since_birth,
		       meal, grams, potty, walk, sleep, memo
		FROM growth_log
		WHERE pet_name = ?
		ORDER BY rowid
	`, petName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// el filtro es el mismo Matches del dominio que usa el backend CSV:
	// los dos backends responden idéntico ante el mismo filtro
	out := make([]growthlog.Entry, 0)
	for rows.Next() {
		e, err := scanGrowthRow(rows)
		if err != nil {
			return nil, err
		}
		if !f.Matches(e) {
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *GrowthLogRepo) ReplaceByPet(ctx context.Context, petName string, entries []growthlog.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM growth_log WHERE pet_name = ?`, petName); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO growth_log (
				pet_name, ts, days_since_birth,
				meal, grams, potty, walk, sleep, memo
			) VALUES (?,?,?,?,?,?,?,?,?)
		`,
			e.PetName,
			e.Timestamp.Format(timestampLayout),
			e.DaysSinceBirth,
			e.Meal,
			e.MealGrams,
			e.Potty,
			e.Walk,
			e.Sleep,
			e.Memo,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanGrowthRow(rows *sql.Rows) (growthlog.Entry, error) {
	var e growthlog.Entry
	var ts string
	if err := rows.Scan(
		&e.PetName,
		&ts,
		&e.DaysSinceBirth,
		&e.Meal,
		&e.MealGrams,
		&e.Potty,
		&e.Walk,
		&e.Sleep,
		&e.Memo,
	); err != nil {
		return growthlog.Entry{}, err
	}

	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return growthlog.Entry{}, err
	}
	e.Timestamp = t
	return e, nil
}
