package csvfile

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pet-growth-diary/internal/domain/growthlog"
)

const (
	growthDataset   = "growth_log"
	timestampLayout = "2006-01-02 15:04:05"
)

var growthHeader = []string{"名前", "日付時間", "生後日数", "食事内容", "グラム", "おしっこ・うんち", "散歩", "睡眠", "MEMO"}

type GrowthLogRepo struct {
	store *Store
}

func NewGrowthLogRepo(store *Store) *GrowthLogRepo {
	return &GrowthLogRepo{store: store}
}

func (r *GrowthLogRepo) Append(ctx context.Context, e growthlog.Entry) error {
	return r.store.Append(growthDataset, growthHeader, [][]string{encodeGrowthRow(e)})
}

func (r *GrowthLogRepo) ListByPet(ctx context.Context, petName string, f growthlog.Filter) ([]growthlog.Entry, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]growthlog.Entry, 0, len(all))
	for _, e := range all {
		if e.PetName != petName {
			continue
		}
		if !f.Matches(e) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// ListAll devuelve las filas de todas las mascotas; lo usa la migración.
func (r *GrowthLogRepo) ListAll(ctx context.Context) ([]growthlog.Entry, error) {
	t, err := r.store.Load(growthDataset, growthHeader)
	if err != nil {
		return nil, err
	}

	out := make([]growthlog.Entry, 0, len(t.Rows))
	for i, row := range t.Rows {
		e, err := decodeGrowthRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %v", ErrCorrupt, growthDataset, i+1, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *GrowthLogRepo) ReplaceByPet(ctx context.Context, petName string, entries []growthlog.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, encodeGrowthRow(e))
	}

	// acotado por mascota: el diario de crecimiento no tiene columna de
	// categoría, el nombre es el único eje de reemplazo
	drop := func(row []string) bool {
		return len(row) > 0 && row[0] == petName
	}
	return r.store.Replace(growthDataset, growthHeader, drop, rows)
}

func encodeGrowthRow(e growthlog.Entry) []string {
	return []string{
		e.PetName,
		e.Timestamp.Format(timestampLayout),
		strconv.Itoa(e.DaysSinceBirth),
		e.Meal,
		strconv.Itoa(e.MealGrams),
		e.Potty,
		e.Walk,
		e.Sleep,
		e.Memo,
	}
}

func decodeGrowthRow(row []string) (growthlog.Entry, error) {
	ts, err := time.Parse(timestampLayout, row[1])
	if err != nil {
		return growthlog.Entry{}, err
	}
	days, err := strconv.Atoi(row[2])
	if err != nil {
		return growthlog.Entry{}, err
	}
	grams, err := strconv.Atoi(row[4])
	if err != nil {
		return growthlog.Entry{}, err
	}

	return growthlog.Entry{
		PetName:        row[0],
		Timestamp:      ts,
		DaysSinceBirth: days,
		Meal:           row[3],
		MealGrams:      grams,
		Potty:          row[5],
		Walk:           row[6],
		Sleep:          row[7],
		Memo:           row[8],
	}, nil
}
