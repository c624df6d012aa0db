package provider

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinova/clinova/pkg/pagination"
)

// SearchFilters narrows a provider search. FirstName matches on prefix
// when a single character was supplied and on substring otherwise; the
// caller sets FirstNamePrefix accordingly. Nil boolean filters mean
// "show all", not false.
type SearchFilters struct {
	FirstName       string
	FirstNamePrefix bool
	LastName        string
	Specialty       string
	InPractice      *bool
	Active          *bool
}

// Repository is the persistence port for providers.
type Repository interface {
	Search(ctx context.Context, f SearchFilters, p pagination.Params) ([]*Provider, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	Create(ctx context.Context, pr *Provider) error
	Update(ctx context.Context, pr *Provider) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
