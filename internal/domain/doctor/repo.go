package doctor

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no doctor matches the requested id.
var ErrNotFound = errors.New("doctor not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
	Create(ctx context.Context, d *Doctor) error
}
