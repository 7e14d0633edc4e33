package growthlog

import "time"

// Entry es una fila del diario de crecimiento. DaysSinceBirth se calcula
// al escribir, a partir de la fecha de nacimiento de la información básica.
type Entry struct {
	PetName        string
	Timestamp      time.Time
	DaysSinceBirth int

	Meal      string
	MealGrams int
	Potty     string
	Walk      string
	Sleep     string
	Memo      string
}

// DaysSinceBirth es la diferencia en días de calendario (no de horas):
// un registro a las 08:00 del 15/02 sobre un nacimiento del 10/01 da 36,
// sin importar las horas.
func DaysSinceBirth(birth, at time.Time) int {
	b := time.Date(birth.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}
