package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinova/clinova/pkg/pagination"
)

// -- Mock Repository --

type mockRepo struct {
	patients  map[uuid.UUID]*Patient
	lastF     SearchFilters
	createErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Search(_ context.Context, f SearchFilters, _ pagination.Params) ([]*Patient, int, error) {
	m.lastF = f
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.patients[id]
	return ok, nil
}

// -- Tests --

func TestCreateRequiresNameAndDOB(t *testing.T) {
	svc := NewService(newMockRepo())
	cases := []struct {
		name string
		in   Input
	}{
		{"missing firstName", Input{LastName: "Doe", DOB: "01/02/1980"}},
		{"missing lastName", Input{FirstName: "Jane", DOB: "01/02/1980"}},
		{"missing dob", Input{FirstName: "Jane", LastName: "Doe"}},
		{"blank firstName", Input{FirstName: "  ", LastName: "Doe", DOB: "01/02/1980"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), &tc.in, "tester"); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreateStoresBlanksAsNil(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	p, err := svc.Create(context.Background(), &Input{
		FirstName: "Jane",
		LastName:  "Doe",
		DOB:       "03/15/1985",
		Email:     "  ",
		City:      "Portland",
	}, "tester")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Email != nil {
		t.Errorf("blank email should be nil, got %q", *p.Email)
	}
	if p.City == nil || *p.City != "Portland" {
		t.Errorf("city not stored")
	}
	if p.DOB == nil || p.DOB.Format("2006-01-02") != "1985-03-15" {
		t.Errorf("dob not parsed: %v", p.DOB)
	}
	if p.CreatedBy == nil || *p.CreatedBy != "tester" {
		t.Errorf("createdBy not set")
	}
}

func TestCreateRejectsBadDOB(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Create(context.Background(), &Input{FirstName: "A", LastName: "B", DOB: "not-a-date"}, ""); err == nil {
		t.Fatal("expected dob parse error")
	}
}

func TestUpdateIsFullReplace(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	p, err := svc.Create(context.Background(), &Input{
		FirstName: "Jane", LastName: "Doe", DOB: "03/15/1985",
		Email: "jane@example.com", City: "Portland",
	}, "tester")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Omitting email must clear it, not keep the old value.
	updated, err := svc.Update(context.Background(), p.ID, &Input{
		FirstName: "Jane", LastName: "Smith", DOB: "03/15/1985",
	}, "editor")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LastName != "Smith" {
		t.Errorf("lastName = %q", updated.LastName)
	}
	if updated.Email != nil {
		t.Errorf("omitted email should be cleared, got %q", *updated.Email)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != "editor" {
		t.Errorf("updatedBy not set")
	}
}

func TestUpdateMissingPatient(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Update(context.Background(), uuid.New(), &Input{FirstName: "A", LastName: "B", DOB: "01/01/2000"}, "")
	if err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestSearchTrimsFilters(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	_, _, err := svc.Search(context.Background(), SearchQuery{FirstName: " Jan ", LastName: "Do"}, pagination.Params{Size: 20})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.lastF.FirstName != "Jan" {
		t.Errorf("firstName filter = %q", repo.lastF.FirstName)
	}
}

func TestParseDOBFilter(t *testing.T) {
	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	cases := []struct {
		raw  string
		want *time.Time
	}{
		{"", nil},
		{"1980-06-15", day(1980, time.June, 15)},
		{"06/15/1980", day(1980, time.June, 15)},
		{"06151980", day(1980, time.June, 15)},
		{"06.15.1980", day(1980, time.June, 15)},
		{"0615198", nil},    // seven digits, filter disabled
		{"061519800", nil},  // nine digits
		{"13/01/1980", nil}, // month out of range
		{"1980-13-01", nil}, // bad ISO
		{"garbage", nil},
	}
	for _, tc := range cases {
		got := ParseDOBFilter(tc.raw)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("%q: expected nil, got %v", tc.raw, got)
		case tc.want != nil && (got == nil || !got.Equal(*tc.want)):
			t.Errorf("%q: expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}
