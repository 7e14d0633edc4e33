package healthlog

import (
	"sort"
	"time"
)

// BoundsMargin es el padding fijo del eje Y alrededor de min/max.
const BoundsMargin = 0.5

type Point struct {
	Date     time.Time
	WeightKg float64
}

// Series emite los pares (fecha, peso) ordenados por fecha ascendente,
// listos para que el colaborador de gráficos dibuje la curva de peso.
func Series(entries []Entry) []Point {
	points := make([]Point, 0, len(entries))
	for _, e := range entries {
		points = append(points, Point{Date: e.Date, WeightKg: e.WeightKg})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// Bounds calcula el rango del eje Y con el margen fijo. Con un solo punto
// el rango sigue siendo válido (min-margen, max+margen); sin puntos no hay
// rango y ok=false, nunca un rango invertido ni división por cero.
func Bounds(points []Point) (min, max float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}

	min = points[0].WeightKg
	max = points[0].WeightKg
	for _, p := range points[1:] {
		if p.WeightKg < min {
			min = p.WeightKg
		}
		if p.WeightKg > max {
			max = p.WeightKg
		}
	}
	return min - BoundsMargin, max + BoundsMargin, true
}
