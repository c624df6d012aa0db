package staff

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinova/clinova/pkg/pagination"
)

type mockStaffRepo struct {
	staff map[uuid.UUID]*Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{staff: make(map[uuid.UUID]*Staff)}
}

func (m *mockStaffRepo) List(_ context.Context, _ pagination.Params) ([]*Staff, int, error) {
	var result []*Staff
	for _, st := range m.staff {
		result = append(result, st)
	}
	return result, len(result), nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*Staff, error) {
	st, ok := m.staff[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return st, nil
}

func (m *mockStaffRepo) Create(_ context.Context, st *Staff) error {
	st.ID = uuid.New()
	m.staff[st.ID] = st
	return nil
}

func (m *mockStaffRepo) Update(_ context.Context, st *Staff) error {
	m.staff[st.ID] = st
	return nil
}

type mockUserRepo struct {
	users  map[string]*User
	getErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*User)}
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	u.ID = uuid.New()
	m.users[u.Username] = u
	return nil
}

func TestCreateUserHashesPassword(t *testing.T) {
	users := newMockUserRepo()
	svc := NewService(newMockStaffRepo(), users)

	u, err := svc.CreateUser(context.Background(), "alice", "correct-horse", "staff", nil)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.PasswordHash == "correct-horse" || u.PasswordHash == "" {
		t.Fatal("password stored in plaintext or empty")
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewService(newMockStaffRepo(), newMockUserRepo())
	cases := []struct {
		name               string
		username, pw, role string
	}{
		{"blank username", "", "longenough", "staff"},
		{"short password", "alice", "short", "staff"},
		{"bad role", "alice", "longenough", "superuser"},
	}
	for _, tc := range cases {
		if _, err := svc.CreateUser(context.Background(), tc.username, tc.pw, tc.role, nil); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	users := newMockUserRepo()
	svc := NewService(newMockStaffRepo(), users)
	if _, err := svc.CreateUser(context.Background(), "alice", "correct-horse", "admin", nil); err != nil {
		t.Fatalf("create user: %v", err)
	}

	u, err := svc.Authenticate(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Role != "admin" {
		t.Errorf("role = %q", u.Role)
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "correct-horse"); err != ErrInvalidCredentials {
		t.Errorf("unknown user: err = %v", err)
	}

	// A storage failure is not the same as a bad password.
	users.getErr = errors.New("connection refused")
	if _, err := svc.Authenticate(context.Background(), "alice", "correct-horse"); err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("storage failure: err = %v", err)
	}
}

func TestStaffCreateValidation(t *testing.T) {
	svc := NewService(newMockStaffRepo(), newMockUserRepo())
	if _, err := svc.Create(context.Background(), &Input{FirstName: "Pat"}); err == nil {
		t.Fatal("expected lastName validation error")
	}
	st, err := svc.Create(context.Background(), &Input{FirstName: "Pat", LastName: "Kim", Email: " "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.Email != nil {
		t.Error("blank email should be nil")
	}
}
