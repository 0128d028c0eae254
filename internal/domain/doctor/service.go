package doctor

import (
	"context"
	"fmt"
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

// Create inserts a doctor into the catalog. Used by the seed command only;
// there is no HTTP write path for doctors.
func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if d.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if d.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	return s.doctors.Create(ctx, d)
}
