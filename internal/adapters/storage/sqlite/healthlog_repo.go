package sqlite

import (
	"context"
	"database/sql"
	"time"

	"pet-growth-diary/internal/domain/healthlog"
)

type HealthLogRepo struct {
	db *sql.DB
}

func NewHealthLogRepo(db *sql.DB) *HealthLogRepo {
	return &HealthLogRepo{db: db}
}

func (r *HealthLogRepo) Append(ctx context.Context, e healthlog.Entry) error {
	var temp sql.NullFloat64
	if e.TemperatureC != nil {
		temp = sql.NullFloat64{Float64: *e.TemperatureC, Valid: true}
	}
	var walks sql.NullInt64
	if e.WalkCount != nil {
		walks = sql.NullInt64{Int64: int64(*e.WalkCount), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_log (pet_name, date, weight_kg, temperature_c, walk_count)
		VALUES (?,?,?,?,?)
	`,
		e.PetName,
		e.Date.Format(dateLayout),
		e.WeightKg,
		temp,
		walks,
	)
	return err
}

func (r *HealthLogRepo) ListByPet(ctx context.Context, petName string) ([]healthlog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_name, date, weight_kg, temperature_c, walk_count
		FROM health_log
		WHERE pet_name = ?
		ORDER BY rowid
	`, petName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]healthlog.Entry, 0)
	for rows.Next() {
		var e healthlog.Entry
		var ds string
		var temp sql.NullFloat64
		var walks sql.NullInt64

		if err := rows.Scan(&e.PetName, &ds, &e.WeightKg, &temp, &walks); err != nil {
			return nil, err
		}

		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			return nil, err
		}
		e.Date = d

		if temp.Valid {
			t := temp.Float64
			e.TemperatureC = &t
		}
		if walks.Valid {
			n := int(walks.Int64)
			e.WalkCount = &n
		}

		out = append(out, e)
	}
	return out, rows.Err()
}
