package growthlog

import (
	"context"
	"strconv"
	"strings"
	"time"
)

type Repository interface {
	Append(ctx context.Context, e Entry) error
	ListByPet(ctx context.Context, petName string, f Filter) ([]Entry, error)

	// ReplaceByPet reescribe todas las filas de la mascota con entries
	// (guardar la grilla editada = overwrite completo, acotado por mascota).
	ReplaceByPet(ctx context.Context, petName string, entries []Entry) error
}

// Filter acota el listado. Ambos ejes vacíos = sin filtro.
type Filter struct {
	Dates   []time.Time // solo cuenta el día de cada fecha
	Keyword string      // subcadena case-insensitive sobre la fila completa
}

func (f Filter) Matches(e Entry) bool {
	if len(f.Dates) > 0 {
		ok := false
		for _, d := range f.Dates {
			if sameDay(d, e.Timestamp) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if q := strings.TrimSpace(f.Keyword); q != "" {
		// igual que el filtro original: se busca sobre la fila "stringificada"
		hay := strings.ToLower(strings.Join([]string{
			e.PetName,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			strconv.Itoa(e.DaysSinceBirth),
			e.Meal,
			strconv.Itoa(e.MealGrams),
			e.Potty,
			e.Walk,
			e.Sleep,
			e.Memo,
		}, " "))
		if !strings.Contains(hay, strings.ToLower(q)) {
			return false
		}
	}

	return true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
