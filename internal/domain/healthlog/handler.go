package healthlog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pet-growth-diary/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, weekStart time.Weekday) {
	r.Route("/health-log", func(hr chi.Router) {
		hr.Post("/", createEntryHandler(svc))
		hr.Get("/", listEntriesHandler(svc))
		hr.Get("/calendar", calendarHandler(svc, weekStart))
		hr.Get("/chart", chartHandler(svc))
	})
}

type entryPayload struct {
	Date         string   `json:"date"` // YYYY-MM-DD
	WeightKg     float64  `json:"weight_kg"`
	TemperatureC *float64 `json:"temperature_c,omitempty"`
	WalkCount    *int     `json:"walk_count,omitempty"`
}

type entriesResponse struct {
	PetName string         `json:"pet_name"`
	Entries []entryPayload `json:"entries"`
}

type cellPayload struct {
	Date    string         `json:"date"`
	InMonth bool           `json:"in_month"`
	Entries []entryPayload `json:"entries,omitempty"`
}

type calendarResponse struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Weeks [][]cellPayload `json:"weeks"`
}

type pointPayload struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

type chartResponse struct {
	Points []pointPayload `json:"points"`
	YMin   *float64       `json:"y_min,omitempty"`
	YMax   *float64       `json:"y_max,omitempty"`
}

func createEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		var req entryPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), sess.PetName, EntryInput{
			Date:         d,
			WeightKg:     req.WeightKg,
			TemperatureC: req.TemperatureC,
			WalkCount:    req.WalkCount,
		})
		if err != nil {
			var vErr *ValidationError
			switch {
			case errors.As(err, &vErr):
				http.Error(w, vErr.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toEntryPayload(e))
	}
}

func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		entries, err := svc.List(r.Context(), sess.PetName)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := entriesResponse{
			PetName: sess.PetName,
			Entries: make([]entryPayload, 0, len(entries)),
		}
		for _, e := range entries {
			out.Entries = append(out.Entries, toEntryPayload(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func calendarHandler(svc *Service, weekStart time.Weekday) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		// sin query params se usa el cursor del calendario de la sesión
		year := sess.Calendar.Year
		month := sess.Calendar.Month
		if v := r.URL.Query().Get("year"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "year must be a positive number", http.StatusBadRequest)
				return
			}
			year = n
		}
		if v := r.URL.Query().Get("month"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 12 {
				http.Error(w, "month must be 1-12", http.StatusBadRequest)
				return
			}
			month = time.Month(n)
		}

		entries, err := svc.List(r.Context(), sess.PetName)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		weeks := MonthGrid(year, month, weekStart, entries)

		out := calendarResponse{
			Year:  year,
			Month: int(month),
			Weeks: make([][]cellPayload, 0, len(weeks)),
		}
		for _, week := range weeks {
			row := make([]cellPayload, 0, 7)
			for _, c := range week {
				cell := cellPayload{
					Date:    c.Date.Format("2006-01-02"),
					InMonth: c.InMonth,
				}
				for _, e := range c.Entries {
					cell.Entries = append(cell.Entries, toEntryPayload(e))
				}
				row = append(row, cell)
			}
			out.Weeks = append(out.Weeks, row)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func chartHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		entries, err := svc.List(r.Context(), sess.PetName)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		points := Series(entries)

		out := chartResponse{
			Points: make([]pointPayload, 0, len(points)),
		}
		for _, p := range points {
			out.Points = append(out.Points, pointPayload{
				Date:     p.Date.Format("2006-01-02"),
				WeightKg: p.WeightKg,
			})
		}
		if yMin, yMax, ok := Bounds(points); ok {
			out.YMin = &yMin
			out.YMax = &yMax
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toEntryPayload(e Entry) entryPayload {
	return entryPayload{
		Date:         e.Date.Format("2006-01-02"),
		WeightKg:     e.WeightKg,
		TemperatureC: e.TemperatureC,
		WalkCount:    e.WalkCount,
	}
}

// writeJSON está duplicado intencionalmente en los handlers de cada módulo
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
