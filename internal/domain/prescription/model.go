package prescription

import (
	"fmt"
	"time"

	"github.com/medscript/medscript/internal/domain/doctor"
	"github.com/medscript/medscript/internal/domain/patient"
)

// MaxItems is the upper bound on medicaments per prescription.
const MaxItems = 10

// InitialVersion is the concurrency token assigned to a prescription before
// its first commit. The store owns every subsequent bump.
const InitialVersion = 1

// Prescription maps to the prescription table.
type Prescription struct {
	ID        int64     `db:"id_prescription" json:"id"`
	Date      time.Time `db:"date" json:"date"`
	DueDate   time.Time `db:"due_date" json:"due_date"`
	PatientID int64     `db:"id_patient" json:"patient_id"`
	DoctorID  int64     `db:"id_doctor" json:"doctor_id"`
	Version   int32     `db:"version" json:"-"`
	Items     []Item    `json:"items"`
}

// Item maps to the prescription_medicament table, keyed by
// (id_prescription, id_medicament).
type Item struct {
	PrescriptionID int64  `db:"id_prescription" json:"prescription_id"`
	MedicamentID   int64  `db:"id_medicament" json:"medicament_id"`
	Dose           int    `db:"dose" json:"dose"`
	Details        string `db:"details" json:"details"`
}

// PatientRef is the tagged patient choice on a creation request: an id
// referencing an existing patient, or the demographic fields of a new one.
type PatientRef struct {
	ID        *int64    `json:"id,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Birthdate time.Time `json:"birthdate"`
}

// ItemRequest is one requested medicament line.
type ItemRequest struct {
	ID      int64  `json:"id"`
	Dose    int    `json:"dose"`
	Details string `json:"details"`
}

// CreateRequest is the inbound shape for creating a prescription.
type CreateRequest struct {
	Patient     *PatientRef   `json:"patient"`
	DoctorID    int64         `json:"doctor_id"`
	Date        time.Time     `json:"date"`
	DueDate     time.Time     `json:"due_date"`
	Medicaments []ItemRequest `json:"medicaments"`
}

// Validate applies the pure request-level checks and returns a field-keyed
// message map. An empty map means the request shape is acceptable; nothing
// here touches the store.
func (r *CreateRequest) Validate() map[string]string {
	fields := make(map[string]string)

	if r.Patient == nil {
		fields["patient"] = "patient payload is required"
	}
	if r.DoctorID <= 0 {
		fields["doctor_id"] = "must be a positive integer"
	}
	if r.Date.IsZero() {
		fields["date"] = "is required"
	}
	if r.DueDate.IsZero() {
		fields["due_date"] = "is required"
	} else if !r.Date.IsZero() && r.DueDate.Before(r.Date) {
		fields["due_date"] = "must be on or after date"
	}

	switch {
	case len(r.Medicaments) == 0:
		fields["medicaments"] = "at least one medicament is required"
	case len(r.Medicaments) > MaxItems:
		fields["medicaments"] = fmt.Sprintf("a prescription can contain at most %d medicaments", MaxItems)
	}
	seen := make(map[int64]bool, len(r.Medicaments))
	for i, m := range r.Medicaments {
		if m.ID <= 0 {
			fields[fmt.Sprintf("medicaments[%d].id", i)] = "must be a positive integer"
		} else if seen[m.ID] {
			fields[fmt.Sprintf("medicaments[%d].id", i)] = "duplicates an earlier entry"
		}
		seen[m.ID] = true
		if m.Dose <= 0 {
			fields[fmt.Sprintf("medicaments[%d].dose", i)] = "must be a positive integer"
		}
	}

	return fields
}

// MedicamentView is a prescription line joined with the catalog name.
type MedicamentView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Dose    int    `json:"dose"`
	Details string `json:"details"`
}

// Details is the denormalized read model for a single prescription.
type Details struct {
	ID          int64            `json:"id"`
	Date        time.Time        `json:"date"`
	DueDate     time.Time        `json:"due_date"`
	Doctor      doctor.Doctor    `json:"doctor"`
	Medicaments []MedicamentView `json:"medicaments"`
}

// PatientDetails is the read model for a patient with their full
// prescription history.
type PatientDetails struct {
	Patient       patient.Patient `json:"patient"`
	Prescriptions []Details       `json:"prescriptions"`
}
