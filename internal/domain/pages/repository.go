package pages

import "context"

type Repository interface {
	ListByPet(ctx context.Context, petName string, cat Category) ([]Record, error)
	Append(ctx context.Context, recs []Record) error

	// ReplaceCategory reescribe todas las filas de (mascota, categoría) con
	// recs. Siempre va acotado por mascota: el original reemplazaba la
	// categoría completa cruzando mascotas, y eso era un bug, no un contrato.
	ReplaceCategory(ctx context.Context, petName string, cat Category, recs []Record) error
}
