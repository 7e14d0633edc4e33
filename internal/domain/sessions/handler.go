package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// HeaderSessionID es el header que identifica la sesión activa.
// El middleware lo resuelve para el resto de los módulos; este handler
// lo lee directo porque es el dueño del recurso.
const HeaderSessionID = "X-Session-ID"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/session", func(sr chi.Router) {
		sr.Post("/", startSessionHandler(svc))
		sr.Get("/", getSessionHandler(svc))
		sr.Patch("/", updateSessionHandler(svc))
	})
}

type startSessionRequest struct {
	PetName string `json:"pet_name"`
	Lang    string `json:"lang"` // "ja" | "en", default ja
}

type calendarCursorPayload struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type updateSessionRequest struct {
	PetName     *string                `json:"pet_name"`
	Page        *string                `json:"page"`
	Lang        *string                `json:"lang"`
	Calendar    *calendarCursorPayload `json:"calendar"`
	SelectedDay *string                `json:"selected_day"` // YYYY-MM-DD; "" limpia la selección
}

type sessionResponse struct {
	ID          string                `json:"id"`
	PetName     string                `json:"pet_name"`
	Page        string                `json:"page"`
	Lang        string                `json:"lang"`
	Calendar    calendarCursorPayload `json:"calendar"`
	SelectedDay *string               `json:"selected_day,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func startSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Start(r.Context(), StartInput{
			PetName: req.PetName,
			Lang:    req.Lang,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "pet_name is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toSessionResponse(sess))
	}
}

func getSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderSessionID))
		sess, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "session not found", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

func updateSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderSessionID))
		if id == "" {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		var req updateSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			PetName: req.PetName,
			Page:    req.Page,
			Lang:    req.Lang,
		}
		if req.Calendar != nil {
			in.Calendar = &CalendarCursor{
				Year:  req.Calendar.Year,
				Month: time.Month(req.Calendar.Month),
			}
		}
		if req.SelectedDay != nil {
			if strings.TrimSpace(*req.SelectedDay) == "" {
				in.ClearDay = true
			} else {
				d, err := time.Parse("2006-01-02", *req.SelectedDay)
				if err != nil {
					http.Error(w, "selected_day must be YYYY-MM-DD", http.StatusBadRequest)
					return
				}
				in.SelectedDay = &d
			}
		}

		sess, err := svc.Update(r.Context(), id, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			// el repo in-memory solo puede fallar por sesión inexistente
			http.Error(w, "session not found", http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

func toSessionResponse(s Session) sessionResponse {
	resp := sessionResponse{
		ID:      s.ID,
		PetName: s.PetName,
		Page:    string(s.Page),
		Lang:    string(s.Lang),
		Calendar: calendarCursorPayload{
			Year:  s.Calendar.Year,
			Month: int(s.Calendar.Month),
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.SelectedDay != nil {
		d := s.SelectedDay.Format("2006-01-02")
		resp.SelectedDay = &d
	}
	return resp
}

// writeJSON está duplicado intencionalmente en los handlers de cada módulo
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
