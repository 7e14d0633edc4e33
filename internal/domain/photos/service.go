package photos

import (
	"context"
	"errors"
	"io"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// ImageStore es el colaborador de almacenamiento de imágenes en disco.
// Acá solo interesa el path resultante, que es lo único que se persiste.
type ImageStore interface {
	Save(petName string, slot Slot, r io.Reader) (path string, err error)
}

type Service struct {
	store ImageStore
}

func NewService(store ImageStore) *Service {
	return &Service{store: store}
}

// Upload guarda la imagen del slot de la mascota y devuelve el path.
func (s *Service) Upload(ctx context.Context, petName string, slot Slot, r io.Reader) (string, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" || r == nil {
		return "", ErrInvalidInput
	}
	if _, ok := ParseSlot(string(slot)); !ok {
		return "", ErrInvalidInput
	}
	return s.store.Save(petName, slot, r)
}
