package patient

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/clinova/pkg/pagination"
)

// SearchFilters narrows a patient search. Name filters match on prefix;
// the remaining text filters match on substring. A nil DOB means no date
// filter.
type SearchFilters struct {
	FirstName string
	LastName  string
	DOB       *time.Time
	Phone     string
	Email     string
	City      string
	State     string
	Zip       string
}

// Repository is the persistence port for patients.
type Repository interface {
	Search(ctx context.Context, f SearchFilters, p pagination.Params) ([]*Patient, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Create(ctx context.Context, pt *Patient) error
	Update(ctx context.Context, pt *Patient) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
