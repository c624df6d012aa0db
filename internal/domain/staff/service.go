package staff

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinova/clinova/pkg/pagination"
	"github.com/clinova/clinova/pkg/validate"
)

// ErrInvalidCredentials is returned for a bad username or password; the
// two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

var validRoles = map[string]bool{"admin": true, "staff": true}

type Service struct {
	staff Repository
	users UserRepository
}

func NewService(staff Repository, users UserRepository) *Service {
	return &Service{staff: staff, users: users}
}

// -- Staff directory --

func (s *Service) List(ctx context.Context, pg pagination.Params) ([]*Staff, int, error) {
	return s.staff.List(ctx, pg)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.staff.GetByID(ctx, id)
}

// Input is the write payload for a staff record.
type Input struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	JobTitle  string     `json:"jobTitle"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	UserID    *uuid.UUID `json:"userId"`
}

func (in *Input) validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return validate.Errorf("firstName is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return validate.Errorf("lastName is required")
	}
	return nil
}

func (in *Input) apply(st *Staff) {
	st.FirstName = strings.TrimSpace(in.FirstName)
	st.LastName = strings.TrimSpace(in.LastName)
	st.JobTitle = nilIfBlank(in.JobTitle)
	st.Phone = nilIfBlank(in.Phone)
	st.Email = nilIfBlank(in.Email)
	st.UserID = in.UserID
}

func (s *Service) Create(ctx context.Context, in *Input) (*Staff, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var st Staff
	in.apply(&st)
	if err := s.staff.Create(ctx, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input) (*Staff, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	st, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(st)
	if err := s.staff.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// -- Accounts --

// CreateUser hashes the password with bcrypt before anything is stored.
func (s *Service) CreateUser(ctx context.Context, username, password, role string, staffID *uuid.UUID) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validate.Errorf("username is required")
	}
	if len(password) < 8 {
		return nil, validate.Errorf("password must be at least 8 characters")
	}
	if !validRoles[role] {
		return nil, validate.Errorf("invalid role: %s", role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := User{Username: username, PasswordHash: string(hash), Role: role, StaffID: staffID}
	if err := s.users.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate checks a username/password pair against the stored hash.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
