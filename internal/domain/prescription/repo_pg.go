package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medscript/medscript/internal/domain/patient"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// Postgres error codes that mean the unit of work lost a race against
// another writer.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected {
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)
		}
	}
	return err
}

func (r *repoPG) Create(ctx context.Context, p *Prescription, newPatient *patient.Patient) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if newPatient != nil {
		err := tx.QueryRow(ctx, `
			INSERT INTO patient (first_name, last_name, birthdate)
			VALUES ($1, $2, $3)
			RETURNING id_patient`,
			newPatient.FirstName, newPatient.LastName, newPatient.Birthdate).
			Scan(&newPatient.ID)
		if err != nil {
			return 0, asConflict(fmt.Errorf("insert patient: %w", err))
		}
		p.PatientID = newPatient.ID
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO prescription (date, due_date, id_patient, id_doctor, version)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_prescription`,
		p.Date, p.DueDate, p.PatientID, p.DoctorID, p.Version).
		Scan(&p.ID)
	if err != nil {
		return 0, asConflict(fmt.Errorf("insert prescription: %w", err))
	}

	for i := range p.Items {
		p.Items[i].PrescriptionID = p.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO prescription_medicament (id_prescription, id_medicament, dose, details)
			VALUES ($1, $2, $3, $4)`,
			p.Items[i].PrescriptionID, p.Items[i].MedicamentID, p.Items[i].Dose, p.Items[i].Details)
		if err != nil {
			return 0, asConflict(fmt.Errorf("insert prescription item: %w", err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, asConflict(fmt.Errorf("commit: %w", err))
	}
	return p.ID, nil
}

func (r *repoPG) GetDetails(ctx context.Context, id int64) (*Details, error) {
	var d Details
	err := r.pool.QueryRow(ctx, `
		SELECT p.id_prescription, p.date, p.due_date,
		       d.id_doctor, d.first_name, d.last_name, d.email
		FROM prescription p
		JOIN doctor d ON d.id_doctor = p.id_doctor
		WHERE p.id_prescription = $1`, id).
		Scan(&d.ID, &d.Date, &d.DueDate,
			&d.Doctor.ID, &d.Doctor.FirstName, &d.Doctor.LastName, &d.Doctor.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d.Medicaments, err = r.loadItems(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) loadItems(ctx context.Context, prescriptionID int64) ([]MedicamentView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pm.id_medicament, m.name, pm.dose, pm.details
		FROM prescription_medicament pm
		JOIN medicament m ON m.id_medicament = pm.id_medicament
		WHERE pm.id_prescription = $1`, prescriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MedicamentView
	for rows.Next() {
		var mv MedicamentView
		if err := rows.Scan(&mv.ID, &mv.Name, &mv.Dose, &mv.Details); err != nil {
			return nil, err
		}
		items = append(items, mv)
	}
	return items, rows.Err()
}

func (r *repoPG) PatientDetails(ctx context.Context, patientID int64) (*patient.Patient, []Details, error) {
	var p patient.Patient
	err := r.pool.QueryRow(ctx, `
		SELECT id_patient, first_name, last_name, birthdate
		FROM patient WHERE id_patient = $1`, patientID).
		Scan(&p.ID, &p.FirstName, &p.LastName, &p.Birthdate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, patient.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	// One joined pass over the whole graph, grouped back into prescriptions
	// in id (insertion) order.
	rows, err := r.pool.Query(ctx, `
		SELECT p.id_prescription, p.date, p.due_date,
		       d.id_doctor, d.first_name, d.last_name, d.email,
		       pm.id_medicament, m.name, pm.dose, pm.details
		FROM prescription p
		JOIN doctor d ON d.id_doctor = p.id_doctor
		JOIN prescription_medicament pm ON pm.id_prescription = p.id_prescription
		JOIN medicament m ON m.id_medicament = pm.id_medicament
		WHERE p.id_patient = $1
		ORDER BY p.id_prescription`, patientID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var details []Details
	index := make(map[int64]int)
	for rows.Next() {
		var (
			d  Details
			mv MedicamentView
		)
		if err := rows.Scan(&d.ID, &d.Date, &d.DueDate,
			&d.Doctor.ID, &d.Doctor.FirstName, &d.Doctor.LastName, &d.Doctor.Email,
			&mv.ID, &mv.Name, &mv.Dose, &mv.Details); err != nil {
			return nil, nil, err
		}

		i, ok := index[d.ID]
		if !ok {
			i = len(details)
			index[d.ID] = i
			details = append(details, d)
		}
		details[i].Medicaments = append(details[i].Medicaments, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return &p, details, nil
}
