package memory

import (
	"context"
	"errors"
	"sync"

	"pet-growth-diary/internal/domain/sessions"
)

// sessionRepo guarda las sesiones en memoria: son transitorias por diseño,
// mueren con el proceso igual que el session_state original.
type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]sessions.Session
}

func NewSessionRepo() sessions.Repository {
	return &sessionRepo{
		byID: make(map[string]sessions.Session),
	}
}

func (r *sessionRepo) Create(ctx context.Context, s sessions.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		return errors.New("session id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("session already exists")
	}

	r.byID[s.ID] = s
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return sessions.Session{}, sessions.ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) Update(ctx context.Context, s sessions.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; !ok {
		return sessions.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}
