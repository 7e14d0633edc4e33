package healthlog

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidationError señala el campo que bloquea el guardado.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "required field missing or invalid: " + e.Field
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

type EntryInput struct {
	Date         time.Time
	WeightKg     float64
	TemperatureC *float64
	WalkCount    *int
}

func (s *Service) Create(ctx context.Context, petName string, in EntryInput) (Entry, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return Entry{}, &ValidationError{Field: "pet_name"}
	}
	if in.Date.IsZero() {
		return Entry{}, &ValidationError{Field: "date"}
	}
	// peso cero o negativo no es un registro válido; no se persiste nada
	if in.WeightKg <= 0 {
		return Entry{}, &ValidationError{Field: "weight_kg"}
	}
	if in.WalkCount != nil && *in.WalkCount < 0 {
		return Entry{}, &ValidationError{Field: "walk_count"}
	}

	e := Entry{
		PetName:      petName,
		Date:         in.Date,
		WeightKg:     in.WeightKg,
		TemperatureC: in.TemperatureC,
		WalkCount:    in.WalkCount,
	}

	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, petName string) ([]Entry, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petName)
}
