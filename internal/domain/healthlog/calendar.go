package healthlog

import "time"

// Cell es un día de la grilla mensual. InMonth marca los días de relleno
// del mes anterior/siguiente que completan las semanas.
type Cell struct {
	Date    time.Time
	InMonth bool
	Entries []Entry
}

// MonthGrid arma la grilla del calendario mensual: semanas completas de 7
// celdas que cubren el mes entero más los días de relleno adyacentes,
// arrancando cada semana en weekStart. A cada celda se le cuelgan los
// registros de salud cuya fecha coincide con el día.
func MonthGrid(year int, month time.Month, weekStart time.Weekday, entries []Entry) [][]Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	day := first.AddDate(0, 0, -offset)

	byDay := make(map[string][]Entry)
	for _, e := range entries {
		k := e.Date.Format("2006-01-02")
		byDay[k] = append(byDay[k], e)
	}

	var weeks [][]Cell
	for !day.After(last) {
		week := make([]Cell, 0, 7)
		for i := 0; i < 7; i++ {
			week = append(week, Cell{
				Date:    day,
				InMonth: day.Month() == month && day.Year() == year,
				Entries: byDay[day.Format("2006-01-02")],
			})
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
