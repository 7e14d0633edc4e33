package healthlog

import "context"

type Repository interface {
	Append(ctx context.Context, e Entry) error
	ListByPet(ctx context.Context, petName string) ([]Entry, error)
}
