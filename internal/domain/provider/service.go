package provider

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/clinova/clinova/pkg/pagination"
	"github.com/clinova/clinova/pkg/validate"
)

type Service struct {
	providers Repository
}

func NewService(providers Repository) *Service {
	return &Service{providers: providers}
}

// SearchQuery carries raw filter values. InPracticeOnly and ActiveOnly
// are tri-state: nil means the flag is not filtered on at all.
type SearchQuery struct {
	FirstName      string
	LastName       string
	Specialty      string
	InPracticeOnly *bool
	ActiveOnly     *bool
}

func (s *Service) Search(ctx context.Context, q SearchQuery, pg pagination.Params) ([]*Provider, int, error) {
	first := strings.TrimSpace(q.FirstName)
	f := SearchFilters{
		FirstName: first,
		// A single typed character anchors at the start of the name;
		// longer input matches anywhere.
		FirstNamePrefix: utf8.RuneCountInString(first) == 1,
		LastName:        strings.TrimSpace(q.LastName),
		Specialty:       strings.TrimSpace(q.Specialty),
		InPractice:      q.InPracticeOnly,
		Active:          q.ActiveOnly,
	}
	return s.providers.Search(ctx, f, pg)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return s.providers.GetByID(ctx, id)
}

// Input is the write payload for a provider.
type Input struct {
	Title      string `json:"title"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Specialty  string `json:"specialty"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Active     *bool  `json:"active"`
	InPractice *bool  `json:"inPractice"`
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

func (in *Input) apply(p *Provider) {
	p.Title = nilIfBlank(in.Title)
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.LastName = strings.TrimSpace(in.LastName)
	p.Specialty = nilIfBlank(in.Specialty)
	p.Phone = nilIfBlank(in.Phone)
	p.Email = nilIfBlank(in.Email)
	if in.Active != nil {
		p.Active = *in.Active
	}
	if in.InPractice != nil {
		p.InPractice = *in.InPractice
	}
}

func (s *Service) Create(ctx context.Context, in *Input, actor string) (*Provider, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := Provider{Active: true, InPractice: true}
	in.apply(&p)
	if actor != "" {
		p.CreatedBy = &actor
		p.UpdatedBy = &actor
	}
	if err := s.providers.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input, actor string) (*Provider, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if actor != "" {
		p.UpdatedBy = &actor
	}
	if err := s.providers.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
