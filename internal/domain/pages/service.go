package pages

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidationError señala qué campo requerido falta, para que el formulario
// pueda marcarlo; el guardado se bloquea entero, nunca se persiste a medias.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "required field missing: " + e.Field
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, petName string, cat Category) ([]Record, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petName, cat)
}

// Submit agrega los registros de un envío del formulario. La página de
// hitos manda varios registros de una; el resto manda uno.
func (s *Service) Submit(ctx context.Context, petName string, cat Category, fields []Fields) ([]Record, error) {
	recs, err := s.buildRecords(petName, cat, fields)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Append(ctx, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// SaveEdits reemplaza todas las filas de la categoría para la mascota por
// el set editado (guardar = overwrite completo, no update por fila).
func (s *Service) SaveEdits(ctx context.Context, petName string, cat Category, fields []Fields) ([]Record, error) {
	recs, err := s.buildRecords(petName, cat, fields)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceCategory(ctx, strings.TrimSpace(petName), cat, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *Service) buildRecords(petName string, cat Category, fields []Fields) ([]Record, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return nil, &ValidationError{Field: "pet_name"}
	}

	recs := make([]Record, 0, len(fields))
	for _, f := range fields {
		if f == nil || f.Category() != cat {
			return nil, ErrInvalidInput
		}
		// el memo original se fecha solo al guardarlo
		if m, ok := f.(Memo); ok && m.Date.IsZero() {
			now := s.now()
			m.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			f = m
		}
		if err := validate(f); err != nil {
			return nil, err
		}
		recs = append(recs, Record{
			PetName:  petName,
			Category: cat,
			Fields:   f,
		})
	}
	return recs, nil
}

func validate(f Fields) error {
	switch v := f.(type) {
	case BasicInfo:
		// el diario de crecimiento depende de la fecha de nacimiento
		if v.BirthDate.IsZero() {
			return &ValidationError{Field: "birth_date"}
		}
	case Handprint:
		if v.Date.IsZero() {
			return &ValidationError{Field: "date"}
		}
	case Milestone:
		if v.Date.IsZero() {
			return &ValidationError{Field: "date"}
		}
		if strings.TrimSpace(v.Description) == "" {
			return &ValidationError{Field: "description"}
		}
	case Birthday:
		if strings.TrimSpace(v.Message) == "" {
			return &ValidationError{Field: "message"}
		}
	case Memo:
		if strings.TrimSpace(v.Text) == "" {
			return &ValidationError{Field: "text"}
		}
	default:
		return ErrInvalidInput
	}
	return nil
}
