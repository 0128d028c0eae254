package medicament

import (
	"context"
	"testing"
)

type mockRepo struct {
	records map[int64]*Medicament
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[int64]*Medicament), nextID: 1}
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Medicament, error) {
	md, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return md, nil
}
func (m *mockRepo) List(_ context.Context) ([]*Medicament, error) {
	var result []*Medicament
	for _, md := range m.records {
		result = append(result, md)
	}
	return result, nil
}
func (m *mockRepo) ExistingIDs(_ context.Context, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool)
	for _, id := range ids {
		if _, ok := m.records[id]; ok {
			existing[id] = true
		}
	}
	return existing, nil
}
func (m *mockRepo) Create(_ context.Context, md *Medicament) error {
	md.ID = m.nextID
	m.nextID++
	m.records[md.ID] = md
	return nil
}

func TestService_Create(t *testing.T) {
	svc := NewService(newMockRepo())
	md := &Medicament{Name: "Paracetamol", Type: "analgesic"}
	if err := svc.Create(context.Background(), md); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.ID == 0 {
		t.Error("expected an assigned id")
	}
}

func TestService_Create_MissingFields(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Create(context.Background(), &Medicament{Type: "analgesic"}); err == nil {
		t.Error("expected an error for a missing name")
	}
	if err := svc.Create(context.Background(), &Medicament{Name: "Paracetamol"}); err == nil {
		t.Error("expected an error for a missing type")
	}
}

func TestRepo_ExistingIDs(t *testing.T) {
	repo := newMockRepo()
	repo.Create(context.Background(), &Medicament{Name: "Paracetamol", Type: "analgesic"})
	repo.Create(context.Background(), &Medicament{Name: "Ibuprofen", Type: "nsaid"})

	existing, err := repo.ExistingIDs(context.Background(), []int64{1, 2, 999})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !existing[1] || !existing[2] || existing[999] {
		t.Errorf("unexpected membership map: %v", existing)
	}
}
