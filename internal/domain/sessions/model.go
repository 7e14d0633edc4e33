package sessions

import "time"

// CalendarCursor es el mes visible del calendario de salud.
type CalendarCursor struct {
	Year  int
	Month time.Month
}

// Session reemplaza el estado global mutable del original: mascota activa,
// página activa, idioma y selecciones transitorias del calendario, todo en
// un objeto explícito que viaja por el contexto de cada request.
type Session struct {
	ID      string
	PetName string
	Page    Page
	Lang    Lang

	Calendar    CalendarCursor
	SelectedDay *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
