package medicament

import (
	"context"
	"fmt"
)

type Service struct {
	medicaments Repository
}

func NewService(medicaments Repository) *Service {
	return &Service{medicaments: medicaments}
}

func (s *Service) Get(ctx context.Context, id int64) (*Medicament, error) {
	return s.medicaments.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Medicament, error) {
	return s.medicaments.List(ctx)
}

// Create inserts a medicament into the catalog. Used by the seed command
// only; there is no HTTP write path for medicaments.
func (s *Service) Create(ctx context.Context, m *Medicament) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Type == "" {
		return fmt.Errorf("type is required")
	}
	return s.medicaments.Create(ctx, m)
}
