package healthlog

import "time"

// Entry es un control de salud: peso obligatorio, temperatura y cantidad
// de paseos opcionales.
type Entry struct {
	PetName  string
	Date     time.Time
	WeightKg float64

	TemperatureC *float64
	WalkCount    *int
}
