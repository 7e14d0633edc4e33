package pages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-growth-diary/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pages/{category}", func(pr chi.Router) {
		pr.Get("/", listPageHandler(svc))
		pr.Post("/", submitPageHandler(svc))
		pr.Put("/", saveEditsHandler(svc))
	})
}

// recordPayload es la forma JSON de una fila; qué campos aplican lo decide
// la categoría de la URL, el resto queda en blanco.
type recordPayload struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD

	BirthDate   string `json:"birth_date,omitempty"`
	BirthTime   string `json:"birth_time,omitempty"`
	BirthPlace  string `json:"birth_place,omitempty"`
	Weather     string `json:"weather,omitempty"`
	BirthWeight string `json:"birth_weight,omitempty"`
	BirthHeight string `json:"birth_height,omitempty"`

	Message     string `json:"message,omitempty"`
	Comment     string `json:"comment,omitempty"`
	Weekday     string `json:"weekday,omitempty"` // derivado, solo en respuestas
	Description string `json:"description,omitempty"`
	Text        string `json:"text,omitempty"`
}

type recordsRequest struct {
	Records []recordPayload `json:"records"`
}

type recordsResponse struct {
	PetName  string          `json:"pet_name"`
	Category string          `json:"category"`
	Records  []recordPayload `json:"records"`
}

func listPageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		cat, ok := ParseCategory(chi.URLParam(r, "category"))
		if !ok {
			http.Error(w, "unknown page category", http.StatusNotFound)
			return
		}

		recs, err := svc.List(r.Context(), sess.PetName, cat)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toRecordsResponse(sess.PetName, cat, recs))
	}
}

func submitPageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleWrite(svc, w, r, svc.Submit, http.StatusCreated)
	}
}

func saveEditsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleWrite(svc, w, r, svc.SaveEdits, http.StatusOK)
	}
}

type writeOp func(ctx context.Context, petName string, cat Category, fields []Fields) ([]Record, error)

func handleWrite(svc *Service, w http.ResponseWriter, r *http.Request, op writeOp, okStatus int) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Error(w, "session required", http.StatusUnauthorized)
		return
	}

	cat, ok := ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		http.Error(w, "unknown page category", http.StatusNotFound)
		return
	}

	var req recordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	fields := make([]Fields, 0, len(req.Records))
	for _, p := range req.Records {
		f, err := toFields(cat, p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields = append(fields, f)
	}

	recs, err := op(r.Context(), sess.PetName, cat, fields)
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

	writeJSON(w, okStatus, toRecordsResponse(sess.PetName, cat, recs))
}

func toFields(cat Category, p recordPayload) (Fields, error) {
	switch cat {
	case CategoryBasicInfo:
		bd, err := parseDate(p.BirthDate)
		if err != nil {
			return nil, errors.New("birth_date must be YYYY-MM-DD")
		}
		return BasicInfo{
			BirthDate:   bd,
			BirthTime:   p.BirthTime,
			BirthPlace:  p.BirthPlace,
			Weather:     p.Weather,
			BirthWeight: p.BirthWeight,
			BirthHeight: p.BirthHeight,
			Message:     p.Message,
		}, nil
	case CategoryHandprint:
		d, err := parseDate(p.Date)
		if err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		return Handprint{Date: d, Comment: p.Comment}, nil
	case CategoryMilestone:
		d, err := parseDate(p.Date)
		if err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		return Milestone{Date: d, Description: p.Description}, nil
	case CategoryBirthday:
		return Birthday{Message: p.Message}, nil
	case CategoryMemo:
		d, err := parseDate(p.Date)
		if err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		// fecha vacía: el service la completa con el día de guardado
		return Memo{Date: d, Text: p.Text}, nil
	default:
		return nil, ErrInvalidInput
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func toRecordsResponse(petName string, cat Category, recs []Record) recordsResponse {
	out := recordsResponse{
		PetName:  petName,
		Category: string(cat),
		Records:  make([]recordPayload, 0, len(recs)),
	}
	for _, rec := range recs {
		out.Records = append(out.Records, toPayload(rec))
	}
	return out
}

func toPayload(rec Record) recordPayload {
	var p recordPayload
	switch v := rec.Fields.(type) {
	case BasicInfo:
		p.BirthDate = v.BirthDate.Format("2006-01-02")
		p.BirthTime = v.BirthTime
		p.BirthPlace = v.BirthPlace
		p.Weather = v.Weather
		p.BirthWeight = v.BirthWeight
		p.BirthHeight = v.BirthHeight
		p.Message = v.Message
	case Handprint:
		p.Date = v.Date.Format("2006-01-02")
		p.Comment = v.Comment
	case Milestone:
		p.Date = v.Date.Format("2006-01-02")
		p.Weekday = v.Weekday()
		p.Description = v.Description
	case Birthday:
		p.Message = v.Message
	case Memo:
		p.Date = v.Date.Format("2006-01-02")
		p.Text = v.Text
	}
	return p
}

// writeJSON está duplicado intencionalmente en los handlers de cada módulo
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
