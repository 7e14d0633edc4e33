package growthlog

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrBirthDateMissing: no hay fecha de nacimiento en la información
	// básica. El registro no se anota con una edad por defecto; se corta
	// acá y el usuario tiene que cargar la página de datos básicos primero.
	ErrBirthDateMissing = errors.New("no birth date recorded in basic info for this pet")
)

// BirthDateSource entrega la fecha de nacimiento registrada de una mascota.
// La implementa el servicio de páginas; se declara acá para poder testear
// este módulo sin montar el de páginas completo.
type BirthDateSource interface {
	BirthDateOf(ctx context.Context, petName string) (birth time.Time, found bool, err error)
}

type Service struct {
	repo   Repository
	births BirthDateSource
	now    func() time.Time
}

func NewService(repo Repository, births BirthDateSource) *Service {
	return &Service{
		repo:   repo,
		births: births,
		now:    time.Now,
	}
}

type EntryInput struct {
	Timestamp time.Time
	Meal      string
	MealGrams int
	Potty     string
	Walk      string
	Sleep     string
	Memo      string
}

func (s *Service) Create(ctx context.Context, petName string, in EntryInput) (Entry, error) {
	e, err := s.buildEntry(ctx, petName, in)
	if err != nil {
		return Entry{}, err
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, petName string, f Filter) ([]Entry, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petName, f)
}

// SaveEdits reemplaza todas las filas de la mascota por la grilla editada.
// Los días de vida se recalculan de cada timestamp: el valor editado a mano
// no se persiste (dato derivado, nunca fuente).
func (s *Service) SaveEdits(ctx context.Context, petName string, ins []EntryInput) ([]Entry, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return nil, ErrInvalidInput
	}

	entries := make([]Entry, 0, len(ins))
	for _, in := range ins {
		e, err := s.buildEntry(ctx, petName, in)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := s.repo.ReplaceByPet(ctx, petName, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) buildEntry(ctx context.Context, petName string, in EntryInput) (Entry, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return Entry{}, ErrInvalidInput
	}
	if in.Timestamp.IsZero() {
		return Entry{}, ErrInvalidInput
	}
	if in.MealGrams < 0 {
		return Entry{}, ErrInvalidInput
	}

	birth, found, err := s.births.BirthDateOf(ctx, petName)
	if err != nil {
		return Entry{}, err
	}
	if !found {
		return Entry{}, ErrBirthDateMissing
	}

	return Entry{
		PetName:        petName,
		Timestamp:      in.Timestamp,
		DaysSinceBirth: DaysSinceBirth(birth, in.Timestamp),
		Meal:           strings.TrimSpace(in.Meal),
		MealGrams:      in.MealGrams,
		Potty:          strings.TrimSpace(in.Potty),
		Walk:           strings.TrimSpace(in.Walk),
		Sleep:          strings.TrimSpace(in.Sleep),
		Memo:           strings.TrimSpace(in.Memo),
	}, nil
}
