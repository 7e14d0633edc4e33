package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("session not found")
)

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

type StartInput struct {
	PetName string
	Lang    string
}

// Start abre una sesión para una mascota. El nombre es la única identidad
// de la mascota en todo el sistema, así que no puede venir vacío.
func (s *Service) Start(ctx context.Context, in StartInput) (Session, error) {
	name := strings.TrimSpace(in.PetName)
	if name == "" {
		return Session{}, ErrInvalidInput
	}

	lang, ok := ParseLang(strings.TrimSpace(in.Lang))
	if !ok {
		return Session{}, ErrInvalidInput
	}

	now := s.now()
	sess := Session{
		ID:      uuid.NewString(),
		PetName: name,
		Page:    PageBasicInfo,
		Lang:    lang,
		Calendar: CalendarCursor{
			Year:  now.Year(),
			Month: now.Month(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	PetName     *string
	Page        *string
	Lang        *string
	Calendar    *CalendarCursor
	SelectedDay *time.Time
	ClearDay    bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Session, error) {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	if in.PetName != nil {
		name := strings.TrimSpace(*in.PetName)
		if name == "" {
			return Session{}, ErrInvalidInput
		}
		sess.PetName = name
	}
	if in.Page != nil {
		p, ok := ParsePage(*in.Page)
		if !ok {
			return Session{}, ErrInvalidInput
		}
		sess.Page = p
	}
	if in.Lang != nil {
		l, ok := ParseLang(*in.Lang)
		if !ok {
			return Session{}, ErrInvalidInput
		}
		sess.Lang = l
	}
	if in.Calendar != nil {
		c := *in.Calendar
		if c.Year < 1 || c.Month < time.January || c.Month > time.December {
			return Session{}, ErrInvalidInput
		}
		sess.Calendar = c
	}
	if in.ClearDay {
		sess.SelectedDay = nil
	} else if in.SelectedDay != nil {
		d := *in.SelectedDay
		sess.SelectedDay = &d
	}

	sess.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}
