package prescription

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/medscript/medscript/internal/domain/doctor"
	"github.com/medscript/medscript/internal/domain/medicament"
	"github.com/medscript/medscript/internal/domain/patient"
)

type Service struct {
	doctors       doctor.Repository
	medicaments   medicament.Repository
	patients      patient.Repository
	prescriptions Repository
	metrics       *Metrics
}

func NewService(
	doctors doctor.Repository,
	medicaments medicament.Repository,
	patients patient.Repository,
	prescriptions Repository,
) *Service {
	return &Service{
		doctors:       doctors,
		medicaments:   medicaments,
		patients:      patients,
		prescriptions: prescriptions,
	}
}

// SetMetrics attaches optional workflow counters to the service.
func (s *Service) SetMetrics(m *Metrics) {
	s.metrics = m
}

// Create runs the prescription creation workflow: request validation,
// doctor and medicament resolution, the patient reuse-or-create decision,
// and a single atomic commit. Steps run strictly in this order so that any
// rejection happens before the store is written.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (int64, error) {
	if fields := req.Validate(); len(fields) > 0 {
		s.countRejected()
		return 0, &ValidationError{Fields: fields}
	}

	if _, err := s.doctors.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			s.countRejected()
			return 0, fmt.Errorf("doctor %d: %w", req.DoctorID, doctor.ErrNotFound)
		}
		return 0, fmt.Errorf("resolve doctor: %w", err)
	}

	// Distinct requested ids, first-seen order.
	var distinct []int64
	seen := make(map[int64]bool, len(req.Medicaments))
	for _, m := range req.Medicaments {
		if !seen[m.ID] {
			seen[m.ID] = true
			distinct = append(distinct, m.ID)
		}
	}

	existing, err := s.medicaments.ExistingIDs(ctx, distinct)
	if err != nil {
		return 0, fmt.Errorf("resolve medicaments: %w", err)
	}
	var missing []int64
	for _, id := range distinct {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		s.countRejected()
		return 0, &MedicamentsNotFoundError{IDs: missing}
	}

	// Reuse-or-create: an id must resolve (the existing record wins over
	// any demographic fields sent alongside it); no id means a new patient
	// staged for insertion inside the commit.
	var newPatient *patient.Patient
	var patientID int64
	if req.Patient.ID != nil {
		p, err := s.patients.GetByID(ctx, *req.Patient.ID)
		if err != nil {
			if errors.Is(err, patient.ErrNotFound) {
				s.countRejected()
				return 0, fmt.Errorf("patient %d: %w", *req.Patient.ID, patient.ErrNotFound)
			}
			return 0, fmt.Errorf("resolve patient: %w", err)
		}
		patientID = p.ID
	} else {
		newPatient = &patient.Patient{
			FirstName: req.Patient.FirstName,
			LastName:  req.Patient.LastName,
			Birthdate: req.Patient.Birthdate,
		}
	}

	items := make([]Item, len(req.Medicaments))
	for i, m := range req.Medicaments {
		items[i] = Item{
			MedicamentID: m.ID,
			Dose:         m.Dose,
			Details:      m.Details,
		}
	}

	pres := &Prescription{
		Date:      req.Date,
		DueDate:   req.DueDate,
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Version:   InitialVersion,
		Items:     items,
	}

	id, err := s.prescriptions.Create(ctx, pres, newPatient)
	if err != nil {
		if errors.Is(err, ErrConflict) && s.metrics != nil {
			s.metrics.Conflicts.Inc()
		}
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.Created.Inc()
	}
	return id, nil
}

// Get loads the denormalized view of one prescription. A missing id yields
// (nil, nil); absence is not a failure on this path.
func (s *Service) Get(ctx context.Context, id int64) (*Details, error) {
	return s.prescriptions.GetDetails(ctx, id)
}

// GetPatientDetails loads a patient with their full prescription history,
// sorted ascending by due date. The sort is stable: equal due dates keep
// the store's arrival order.
func (s *Service) GetPatientDetails(ctx context.Context, patientID int64) (*PatientDetails, error) {
	p, list, err := s.prescriptions.PatientDetails(ctx, patientID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].DueDate.Before(list[j].DueDate)
	})

	return &PatientDetails{
		Patient:       *p,
		Prescriptions: list,
	}, nil
}

func (s *Service) countRejected() {
	if s.metrics != nil {
		s.metrics.Rejected.Inc()
	}
}
