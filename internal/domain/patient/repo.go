package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no patient matches the requested id.
var ErrNotFound = errors.New("patient not found")

// Repository is read-only: patient rows are inserted only as part of the
// prescription unit of work, never through this interface.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Patient, error)
}
