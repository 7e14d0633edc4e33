package sessions

import "context"

type Repository interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, s Session) error
}
