package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pet-growth-diary/internal/domain/pages"
)

const dateLayout = "2006-01-02"

type PagesRepo struct {
	db *sql.DB
}

func NewPagesRepo(db *sql.DB) *PagesRepo {
	return &PagesRepo{db: db}
}

func (r *PagesRepo) ListByPet(ctx context.Context, petName string, cat pages.Category) ([]pages.Record, error) {
	switch cat {
	case pages.CategoryBasicInfo:
		return r.listBasicInfo(ctx, petName)
	case pages.CategoryHandprint:
		return r.listHandprint(ctx, petName)
	case pages.CategoryMilestone:
		return r.listMilestones(ctx, petName)
	case pages.CategoryBirthday:
		return r.listBirthday(ctx, petName)
	case pages.CategoryMemo:
		return r.listMemo(ctx, petName)
	default:
		return nil, fmt.Errorf("sqlite: unknown page category %q", cat)
	}
}

func (r *PagesRepo) Append(ctx context.Context, recs []pages.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range recs {
		if err := insertRecord(ctx, tx, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PagesRepo) ReplaceCategory(ctx context.Context, petName string, cat pages.Category, recs []pages.Record) error {
	table, err := tableFor(cat)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// acotado por mascota: la categoría la da la tabla
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE pet_name = ?", petName); err != nil {
		return err
	}
	for _, rec := range recs {
		if rec.Category != cat {
			return fmt.Errorf("sqlite: record category %q does not match %q", rec.Category, cat)
		}
		if err := insertRecord(ctx, tx, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func tableFor(cat pages.Category) (string, error) {
	switch cat {
	case pages.CategoryBasicInfo:
		return "basic_info", nil
	case pages.CategoryHandprint:
		return "handprint", nil
	case pages.CategoryMilestone:
		return "milestones", nil
	case pages.CategoryBirthday:
		return "birthday", nil
	case pages.CategoryMemo:
		return "memo_log", nil
	default:
		return "", fmt.Errorf("sqlite: unknown page category %q", cat)
	}
}

func insertRecord(ctx context.Context, tx *sql.Tx, rec pages.Record) error {
	switch v := rec.Fields.(type) {
	case pages.BasicInfo:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO basic_info (
				pet_name, birth_date, birth_time, birth_place,
				weather, birth_weight, birth_height, message
			) VALUES (?,?,?,?,?,?,?,?)
		`,
			rec.PetName, v.BirthDate.Format(dateLayout), v.BirthTime, v.BirthPlace,
			v.Weather, v.BirthWeight, v.BirthHeight, v.Message,
		)
		return err
	case pages.Handprint:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO handprint (pet_name, date, comment) VALUES (?,?,?)
		`, rec.PetName, v.Date.Format(dateLayout), v.Comment)
		return err
	case pages.Milestone:
		// el día de semana no se guarda: es derivado y se recalcula al leer
		_, err := tx.ExecContext(ctx, `
			INSERT INTO milestones (pet_name, date, description) VALUES (?,?,?)
		`, rec.PetName, v.Date.Format(dateLayout), v.Description)
		return err
	case pages.Birthday:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO birthday (pet_name, message) VALUES (?,?)
		`, rec.PetName, v.Message)
		return err
	case pages.Memo:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO memo_log (pet_name, date, text) VALUES (?,?,?)
		`, rec.PetName, v.Date.Format(dateLayout), v.Text)
		return err
	default:
		return fmt.Errorf("sqlite: unknown page fields %T", rec.Fields)
	}
}

func (r *PagesRepo) listBasicInfo(ctx context.Context, petName string) ([]pages.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_name, birth_date, birth_time, birth_place,
		       weather, birth_weight, birth_height, message
		FROM basic_info
		WHERE pet_name = ?
		ORDER BY rowid
	`, petName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pages.Record, 0)
	for rows.Next() {
		var name, bd string
		var v pages.BasicInfo
		if err := rows.Scan(&name, &bd, &v.BirthTime, &v.BirthPlace,
			&v.Weather, &v.BirthWeight, &v.BirthHeight, &v.Message); err != nil {
			return nil, err
		}
		d, err := time.Parse(dateLayout, bd)
		if err != nil {
			return nil, err
		}
		v.BirthDate = d
		out = append(out, pages.Record{PetName: name, Category: pages.CategoryBasicInfo, Fields: v})
	}
	return out, rows.Err()
}

func (r *PagesRepo) listHandprint(ctx context.Context, petName string) ([]pages.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_name, date, comment FROM handprint
		WHERE pet_name = ? ORDER BY rowid
	`, petName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pages.Record, 0)
	for rows.Next() {
		var name, ds string
		var v pages.Handprint
		if err := rows.Scan(&name, &ds, &v.Comment); err != nil {
			return nil, err
		}
		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			return nil, err
		}
		v.Date = d
		out = append(out, pages.Record{PetName: name, Category: pages.CategoryHandprint, Fields: v})
	}
	return out, rows.Err()
}

func (r *PagesRepo) listMilestones(ctx context.Context, petName string) ([]pages.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_name, date, description FROM milestones
		WHERE pet_name = ? ORDER BY rowid
	`, petName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pages.Record, 0)
	for rows.Next() {
		var name, ds string
		var v pages.Milestone
		if err := rows.Scan(&name, &ds, &v.Description); err != nil {
			return nil, err
		}
		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			return nil, err
		}
		v.Date = d
		out = append(out, pages.Record{PetName: name, Category: pages.CategoryMilestone, Fields: v})
	}
	return out, rows.Err()
}

func (r *PagesRepo) listBirthday(ctx context.Context, petName string) ([]pages.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_name, message FROM birthday
		WHERE pet_name = ? ORDER BY rowid
	`, petName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pages.Record, 0)
	for rows.Next() {
		var name string
		var v pages.Birthday
		if err := rows.Scan(&name, &v.Message); err != nil {
			return nil, err
		}
		out = append(out, pages.Record{PetName: name, Category: pages.CategoryBirthday, Fields: v})
	}
	return out, rows.Err()
}

func (r *PagesRepo) listMemo(ctx context.Context, petName string) ([]pages.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_name, date, text FROM memo_log
		WHERE pet_name = ? ORDER BY rowid
	`, petName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pages.Record, 0)
	for rows.Next() {
		var name, ds string
		var v pages.Memo
		if err := rows.Scan(&name, &ds, &v.Text); err != nil {
			return nil, err
		}
		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			return nil, err
		}
		v.Date = d
		out = append(out, pages.Record{PetName: name, Category: pages.CategoryMemo, Fields: v})
	}
	return out, rows.Err()
}
