package insurance

import (
	"time"

	"github.com/google/uuid"
)

// Insurance maps to the insurances table. Type distinguishes primary
// from secondary coverage plans.
type Insurance struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProviderName string    `db:"provider_name" json:"providerName"`
	PolicyNumber *string   `db:"policy_number" json:"policyNumber,omitempty"`
	GroupNumber  *string   `db:"group_number" json:"groupNumber,omitempty"`
	Type         *string   `db:"type" json:"type,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Address      *string   `db:"address" json:"address,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
