package patient

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/clinova/pkg/pagination"
	"github.com/clinova/clinova/pkg/validate"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// SearchQuery carries raw (user-supplied) filter strings; the service
// normalizes them before they reach the repository.
type SearchQuery struct {
	FirstName string
	LastName  string
	DOB       string
	Phone     string
	Email     string
	City      string
	State     string
	Zip       string
}

func (s *Service) Search(ctx context.Context, q SearchQuery, pg pagination.Params) ([]*Patient, int, error) {
	f := SearchFilters{
		FirstName: strings.TrimSpace(q.FirstName),
		LastName:  strings.TrimSpace(q.LastName),
		DOB:       ParseDOBFilter(q.DOB),
		Phone:     strings.TrimSpace(q.Phone),
		Email:     strings.TrimSpace(q.Email),
		City:      strings.TrimSpace(q.City),
		State:     strings.TrimSpace(q.State),
		Zip:       strings.TrimSpace(q.Zip),
	}
	return s.patients.Search(ctx, f, pg)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// Input is the write payload for a patient. Optional text fields arrive
// as plain strings; blanks are stored as NULL.
type Input struct {
	Title                string     `json:"title"`
	FirstName            string     `json:"firstName"`
	MiddleName           string     `json:"middleName"`
	LastName             string     `json:"lastName"`
	DOB                  string     `json:"dob"`
	Gender               string     `json:"gender"`
	PhonePrimary         string     `json:"phonePrimary"`
	PhoneSecondary       string     `json:"phoneSecondary"`
	Email                string     `json:"email"`
	AddressLine1         string     `json:"addressLine1"`
	AddressLine2         string     `json:"addressLine2"`
	City                 string     `json:"city"`
	State                string     `json:"state"`
	Zip                  string     `json:"zip"`
	InsurancePrimaryID   *uuid.UUID `json:"insurancePrimaryId"`
	InsuranceSecondaryID *uuid.UUID `json:"insuranceSecondaryId"`
}

func (in *Input) validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return validate.Errorf("firstName is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return validate.Errorf("lastName is required")
	}
	if strings.TrimSpace(in.DOB) == "" {
		return validate.Errorf("dob is required")
	}
	return nil
}

func (in *Input) apply(p *Patient) error {
	dob, err := ParseDOB(in.DOB)
	if err != nil {
		return err
	}
	p.Title = nilIfBlank(in.Title)
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.MiddleName = nilIfBlank(in.MiddleName)
	p.LastName = strings.TrimSpace(in.LastName)
	p.DOB = dob
	p.Gender = nilIfBlank(in.Gender)
	p.PhonePrimary = nilIfBlank(in.PhonePrimary)
	p.PhoneSecondary = nilIfBlank(in.PhoneSecondary)
	p.Email = nilIfBlank(in.Email)
	p.AddressLine1 = nilIfBlank(in.AddressLine1)
	p.AddressLine2 = nilIfBlank(in.AddressLine2)
	p.City = nilIfBlank(in.City)
	p.State = nilIfBlank(in.State)
	p.Zip = nilIfBlank(in.Zip)
	p.InsurancePrimaryID = in.InsurancePrimaryID
	p.InsuranceSecondaryID = in.InsuranceSecondaryID
	return nil
}

func (s *Service) Create(ctx context.Context, in *Input, actor string) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var p Patient
	if err := in.apply(&p); err != nil {
		return nil, err
	}
	if actor != "" {
		p.CreatedBy = &actor
		p.UpdatedBy = &actor
	}
	if err := s.patients.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces every editable field; it is a full overwrite, not a merge.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input, actor string) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(p); err != nil {
		return nil, err
	}
	if actor != "" {
		p.UpdatedBy = &actor
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseDOB parses a write-side date of birth. It accepts MM/DD/YYYY and
// the ISO form YYYY-MM-DD.
func ParseDOB(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{DOBFormat, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, validate.Errorf("invalid dob: %s", raw)
}

// ParseDOBFilter interprets a free-form dob search value. ISO dates
// (anything with a hyphen) parse as YYYY-MM-DD; otherwise every
// non-digit is stripped and exactly eight remaining digits parse as
// MMDDYYYY. Anything else simply disables the date filter; a
// half-typed date must not return zero results for the other filters.
func ParseDOBFilter(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.Contains(raw, "-") {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return &t
		}
		return nil
	}
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 8 {
		return nil
	}
	if t, err := time.Parse("01022006", digits.String()); err == nil {
		return &t
	}
	return nil
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
