package provider

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider maps to the providers table.
type Provider struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Title      *string   `db:"title" json:"title,omitempty"`
	FirstName  string    `db:"first_name" json:"firstName"`
	LastName   string    `db:"last_name" json:"lastName"`
	Specialty  *string   `db:"specialty" json:"specialty,omitempty"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Active     bool      `db:"active" json:"active"`
	InPractice bool      `db:"in_practice" json:"inPractice"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy  *string   `db:"created_by" json:"-"`
	UpdatedBy  *string   `db:"updated_by" json:"-"`
}

// DTO is the transport representation of a provider.
type DTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Specialty   string    `json:"specialty"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Active      bool      `json:"active"`
	InPractice  bool      `json:"inPractice"`
	DisplayName string    `json:"displayName"`
}

// ToDTO projects a provider for transport, with nulls as empty strings.
func (p *Provider) ToDTO() DTO {
	return DTO{
		ID:          p.ID,
		Title:       strVal(p.Title),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Specialty:   strVal(p.Specialty),
		Phone:       strVal(p.Phone),
		Email:       strVal(p.Email),
		Active:      p.Active,
		InPractice:  p.InPractice,
		DisplayName: p.DisplayName(),
	}
}

// DisplayName joins title and name parts with single spaces, trimmed.
func (p *Provider) DisplayName() string {
	return strings.TrimSpace(strVal(p.Title) + " " + p.FirstName + " " + p.LastName)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
