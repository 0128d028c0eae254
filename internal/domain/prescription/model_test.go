package prescription

import (
	"testing"
	"time"
)

func validRequest() *CreateRequest {
	date := time.Date(2025, 5, 22, 0, 0, 0, 0, time.UTC)
	return &CreateRequest{
		Patient: &PatientRef{
			FirstName: "Ana",
			LastName:  "Silva",
			Birthdate: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		DoctorID: 1,
		Date:     date,
		DueDate:  date.AddDate(0, 1, 0),
		Medicaments: []ItemRequest{
			{ID: 1, Dose: 2, Details: "after meals"},
		},
	}
}

func TestCreateRequest_Validate_OK(t *testing.T) {
	req := validRequest()
	if fields := req.Validate(); len(fields) != 0 {
		t.Errorf("expected no violations, got %v", fields)
	}
}

func TestCreateRequest_Validate_DueDateEqualsDate(t *testing.T) {
	req := validRequest()
	req.DueDate = req.Date
	if fields := req.Validate(); len(fields) != 0 {
		t.Errorf("due date equal to date must be accepted, got %v", fields)
	}
}

func TestCreateRequest_Validate_Violations(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*CreateRequest)
		field string
	}{
		{"missing patient", func(r *CreateRequest) { r.Patient = nil }, "patient"},
		{"zero doctor id", func(r *CreateRequest) { r.DoctorID = 0 }, "doctor_id"},
		{"negative doctor id", func(r *CreateRequest) { r.DoctorID = -3 }, "doctor_id"},
		{"missing date", func(r *CreateRequest) { r.Date = time.Time{} }, "date"},
		{"missing due date", func(r *CreateRequest) { r.DueDate = time.Time{} }, "due_date"},
		{"due date before date", func(r *CreateRequest) { r.DueDate = r.Date.AddDate(0, 0, -1) }, "due_date"},
		{"no medicaments", func(r *CreateRequest) { r.Medicaments = nil }, "medicaments"},
		{"zero medicament id", func(r *CreateRequest) { r.Medicaments[0].ID = 0 }, "medicaments[0].id"},
		{"zero dose", func(r *CreateRequest) { r.Medicaments[0].Dose = 0 }, "medicaments[0].dose"},
		{"negative dose", func(r *CreateRequest) { r.Medicaments[0].Dose = -1 }, "medicaments[0].dose"},
		{"duplicate medicament", func(r *CreateRequest) {
			r.Medicaments = append(r.Medicaments, ItemRequest{ID: 1, Dose: 3})
		}, "medicaments[1].id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mut(req)
			fields := req.Validate()
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("expected violation on %q, got %v", tt.field, fields)
			}
		})
	}
}

func TestCreateRequest_Validate_TooManyMedicaments(t *testing.T) {
	req := validRequest()
	req.Medicaments = nil
	for i := 0; i < MaxItems+1; i++ {
		req.Medicaments = append(req.Medicaments, ItemRequest{ID: int64(i + 1), Dose: 1})
	}
	fields := req.Validate()
	if _, ok := fields["medicaments"]; !ok {
		t.Errorf("expected violation on medicaments, got %v", fields)
	}
}

func TestCreateRequest_Validate_ExactlyMaxMedicaments(t *testing.T) {
	req := validRequest()
	req.Medicaments = nil
	for i := 0; i < MaxItems; i++ {
		req.Medicaments = append(req.Medicaments, ItemRequest{ID: int64(i + 1), Dose: 1})
	}
	if fields := req.Validate(); len(fields) != 0 {
		t.Errorf("exactly %d medicaments must be accepted, got %v", MaxItems, fields)
	}
}

func TestCreateRequest_Validate_CollectsAllViolations(t *testing.T) {
	req := &CreateRequest{}
	fields := req.Validate()
	for _, f := range []string{"patient", "doctor_id", "date", "due_date", "medicaments"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("expected violation on %q, got %v", f, fields)
		}
	}
}
