package photos

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"pet-growth-diary/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes limita el tamaño del multipart completo.
const maxUploadBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/photos/{slot}", uploadPhotoHandler(svc))
}

type uploadResponse struct {
	PetName string `json:"pet_name"`
	Slot    string `json:"slot"`
	Path    string `json:"path"`
}

func uploadPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		slot, ok := ParseSlot(chi.URLParam(r, "slot"))
		if !ok {
			http.Error(w, "unknown photo slot", http.StatusNotFound)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("photo")
		if err != nil {
			http.Error(w, "photo file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		// mismas extensiones que aceptaba el uploader original
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".jpg", ".jpeg", ".png":
		default:
			http.Error(w, "photo must be jpg, jpeg or png", http.StatusBadRequest)
			return
		}

		path, err := svc.Upload(r.Context(), sess.PetName, slot, file)
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, uploadResponse{
			PetName: sess.PetName,
			Slot:    string(slot),
			Path:    path,
		})
	}
}

// writeJSON está duplicado intencionalmente en los handlers de cada módulo
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
