package patient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	var p Patient
	err := r.pool.QueryRow(ctx, `
		SELECT id_patient, first_name, last_name, birthdate
		FROM patient WHERE id_patient = $1`, id).
		Scan(&p.ID, &p.FirstName, &p.LastName, &p.Birthdate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
