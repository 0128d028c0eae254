package prescription

import (
	"context"

	"github.com/medscript/medscript/internal/domain/patient"
)

// Repository is the persistence boundary for the prescription aggregate.
type Repository interface {
	// Create commits the prescription and its items as one atomic unit of
	// work. When newPatient is non-nil it is inserted in the same
	// transaction and its assigned id is written back before the
	// prescription row references it. A version-stamp mismatch or a lost
	// race inside the transaction surfaces as ErrConflict.
	Create(ctx context.Context, p *Prescription, newPatient *patient.Patient) (int64, error)

	// GetDetails loads one prescription with its doctor and medicament
	// lines. A missing id returns (nil, nil): absence is a normal outcome
	// here, not a failure.
	GetDetails(ctx context.Context, id int64) (*Details, error)

	// PatientDetails loads a patient and every prescription they own, in
	// store arrival (insertion) order. A missing patient returns
	// patient.ErrNotFound.
	PatientDetails(ctx context.Context, patientID int64) (*patient.Patient, []Details, error)
}
