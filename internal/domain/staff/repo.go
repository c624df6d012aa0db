package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinova/clinova/pkg/pagination"
)

// Repository is the persistence port for staff records.
type Repository interface {
	List(ctx context.Context, p pagination.Params) ([]*Staff, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	Create(ctx context.Context, st *Staff) error
	Update(ctx context.Context, st *Staff) error
}

// UserRepository is the persistence port for login accounts.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
}
