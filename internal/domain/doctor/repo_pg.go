package doctor

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

const doctorCols = `id_doctor, first_name, last_name, email`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email)
	return &d, err
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	d, err := scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE id_doctor = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *repoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+doctorCols+` FROM doctor ORDER BY id_doctor`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO doctor (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id_doctor`,
		d.FirstName, d.LastName, d.Email).Scan(&d.ID)
}
