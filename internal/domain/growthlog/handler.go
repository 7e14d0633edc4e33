package growthlog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-growth-diary/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/growth-log", func(gr chi.Router) {
		gr.Post("/", createEntryHandler(svc))
		gr.Get("/", listEntriesHandler(svc))
		gr.Put("/", saveEditsHandler(svc))
	})
}

type entryPayload struct {
	Timestamp      string `json:"timestamp"` // "YYYY-MM-DD HH:MM:SS"
	DaysSinceBirth int    `json:"days_since_birth,omitempty"`
	Meal           string `json:"meal,omitempty"`
	MealGrams      int    `json:"meal_grams,omitempty"`
	Potty          string `json:"potty,omitempty"`
	Walk           string `json:"walk,omitempty"`
	Sleep          string `json:"sleep,omitempty"`
	Memo           string `json:"memo,omitempty"`
}

type entriesRequest struct {
	Entries []entryPayload `json:"entries"`
}

type entriesResponse struct {
	PetName string         `json:"pet_name"`
	Entries []entryPayload `json:"entries"`
}

const timestampLayout = "2006-01-02 15:04:05"

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

		in, err := toEntryInput(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), sess.PetName, in)
		if err != nil {
			writeEntryError(w, err)
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

		var f Filter
		for _, ds := range r.URL.Query()["date"] {
			d, err := time.Parse("2006-01-02", ds)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			f.Dates = append(f.Dates, d)
		}
		f.Keyword = r.URL.Query().Get("q")

		entries, err := svc.List(r.Context(), sess.PetName, f)
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

func saveEditsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		var req entriesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ins := make([]EntryInput, 0, len(req.Entries))
		for _, p := range req.Entries {
			in, err := toEntryInput(p)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			ins = append(ins, in)
		}

		entries, err := svc.SaveEdits(r.Context(), sess.PetName, ins)
		if err != nil {
			writeEntryError(w, err)
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

func writeEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBirthDateMissing):
		// falta el dato del que depende la edad: error accionable, no edad 0
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEntryInput(p entryPayload) (EntryInput, error) {
	ts, err := time.Parse(timestampLayout, p.Timestamp)
	if err != nil {
		return EntryInput{}, errors.New("timestamp must be YYYY-MM-DD HH:MM:SS")
	}
	return EntryInput{
		Timestamp: ts,
		Meal:      p.Meal,
		MealGrams: p.MealGrams,
		Potty:     p.Potty,
		Walk:      p.Walk,
		Sleep:     p.Sleep,
		Memo:      p.Memo,
	}, nil
}

func toEntryPayload(e Entry) entryPayload {
	return entryPayload{
		Timestamp:      e.Timestamp.Format(timestampLayout),
		DaysSinceBirth: e.DaysSinceBirth,
		Meal:           e.Meal,
		MealGrams:      e.MealGrams,
		Potty:          e.Potty,
		Walk:           e.Walk,
		Sleep:          e.Sleep,
		Memo:           e.Memo,
	}
}

// writeJSON está duplicado intencionalmente en los handlers de cada módulo
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
