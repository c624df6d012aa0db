package insurance

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinova/clinova/pkg/pagination"
)

// Repository is the persistence port for insurance plans.
type Repository interface {
	List(ctx context.Context, providerName string, p pagination.Params) ([]*Insurance, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Insurance, error)
	Create(ctx context.Context, ins *Insurance) error
	Update(ctx context.Context, ins *Insurance) error
}
