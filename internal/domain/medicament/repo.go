package medicament

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no medicament matches the requested id.
var ErrNotFound = errors.New("medicament not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Medicament, error)
	List(ctx context.Context) ([]*Medicament, error)
	// ExistingIDs reports which of the given ids are present in the catalog.
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	Create(ctx context.Context, m *Medicament) error
}
