package doctor

import (
	"context"
	"errors"
	"testing"
)

type mockRepo struct {
	records map[int64]*Doctor
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[int64]*Doctor), nextID: 1}
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Doctor, error) {
	d, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}
func (m *mockRepo) List(_ context.Context) ([]*Doctor, error) {
	var result []*Doctor
	for _, d := range m.records {
		result = append(result, d)
	}
	return result, nil
}
func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = m.nextID
	m.nextID++
	m.records[d.ID] = d
	return nil
}

func TestService_Create(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	d := &Doctor{FirstName: "Greg", LastName: "House", Email: "house@ppth.example"}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == 0 {
		t.Error("expected an assigned id")
	}
}

func TestService_Create_MissingFields(t *testing.T) {
	svc := NewService(newMockRepo())
	tests := []struct {
		name string
		d    *Doctor
	}{
		{"missing first name", &Doctor{LastName: "House", Email: "h@x.example"}},
		{"missing last name", &Doctor{FirstName: "Greg", Email: "h@x.example"}},
		{"missing email", &Doctor{FirstName: "Greg", LastName: "House"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tt.d); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
