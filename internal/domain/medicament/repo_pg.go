package medicament

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

const medicamentCols = `id_medicament, name, description, type`

func scanMedicament(row pgx.Row) (*Medicament, error) {
	var m Medicament
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Type)
	return &m, err
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Medicament, error) {
	m, err := scanMedicament(r.pool.QueryRow(ctx,
		`SELECT `+medicamentCols+` FROM medicament WHERE id_medicament = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repoPG) List(ctx context.Context) ([]*Medicament, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+medicamentCols+` FROM medicament ORDER BY id_medicament`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medicaments []*Medicament
	for rows.Next() {
		m, err := scanMedicament(rows)
		if err != nil {
			return nil, err
		}
		medicaments = append(medicaments, m)
	}
	return medicaments, rows.Err()
}

func (r *repoPG) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id_medicament FROM medicament WHERE id_medicament = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, m *Medicament) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO medicament (name, description, type)
		VALUES ($1, $2, $3)
		RETURNING id_medicament`,
		m.Name, m.Description, m.Type).Scan(&m.ID)
}
