package csvfile

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pet-growth-diary/internal/domain/healthlog"
)

const healthDataset = "health_log"

var healthHeader = []string{"名前", "日付", "体重kg", "体温", "散歩回数"}

type HealthLogRepo struct {
	store *Store
}

func NewHealthLogRepo(store *Store) *HealthLogRepo {
	return &HealthLogRepo{store: store}
}

func (r *HealthLogRepo) Append(ctx context.Context, e healthlog.Entry) error {
	return r.store.Append(healthDataset, healthHeader, [][]string{encodeHealthRow(e)})
}

func (r *HealthLogRepo) ListByPet(ctx context.Context, petName string) ([]healthlog.Entry, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]healthlog.Entry, 0, len(all))
	for _, e := range all {
		if e.PetName == petName {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll devuelve las filas de todas las mascotas; lo usa la migración.
func (r *HealthLogRepo) ListAll(ctx context.Context) ([]healthlog.Entry, error) {
	t, err := r.store.Load(healthDataset, healthHeader)
	if err != nil {
		return nil, err
	}

	out := make([]healthlog.Entry, 0, len(t.Rows))
	for i, row := range t.Rows {
		e, err := decodeHealthRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %v", ErrCorrupt, healthDataset, i+1, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func encodeHealthRow(e healthlog.Entry) []string {
	temp := ""
	if e.TemperatureC != nil {
		temp = strconv.FormatFloat(*e.TemperatureC, 'f', -1, 64)
	}
	walks := ""
	if e.WalkCount != nil {
		walks = strconv.Itoa(*e.WalkCount)
	}
	return []string{
		e.PetName,
		e.Date.Format(dateLayout),
		strconv.FormatFloat(e.WeightKg, 'f', -1, 64),
		temp,
		walks,
	}
}

func decodeHealthRow(row []string) (healthlog.Entry, error) {
	d, err := time.Parse(dateLayout, row[1])
	if err != nil {
		return healthlog.Entry{}, err
	}
	weight, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return healthlog.Entry{}, err
	}

	e := healthlog.Entry{
		PetName:  row[0],
		Date:     d,
		WeightKg: weight,
	}

	// los campos opcionales quedan en blanco cuando no se cargaron
	if row[3] != "" {
		t, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return healthlog.Entry{}, err
		}
		e.TemperatureC = &t
	}
	if row[4] != "" {
		n, err := strconv.Atoi(row[4])
		if err != nil {
			return healthlog.Entry{}, err
		}
		e.WalkCount = &n
	}

	return e, nil
}
