package patient

import (
	"time"

	"github.com/google/uuid"
)

// DOBFormat is the display format for dates of birth.
const DOBFormat = "01/02/2006"

// Patient maps to the patients table.
type Patient struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Title                *string    `db:"title" json:"title,omitempty"`
	FirstName            string     `db:"first_name" json:"firstName"`
	MiddleName           *string    `db:"middle_name" json:"middleName,omitempty"`
	LastName             string     `db:"last_name" json:"lastName"`
	DOB                  *time.Time `db:"dob" json:"dob,omitempty"`
	Gender               *string    `db:"gender" json:"gender,omitempty"`
	PhonePrimary         *string    `db:"phone_primary" json:"phonePrimary,omitempty"`
	PhoneSecondary       *string    `db:"phone_secondary" json:"phoneSecondary,omitempty"`
	Email                *string    `db:"email" json:"email,omitempty"`
	AddressLine1         *string    `db:"address_line1" json:"addressLine1,omitempty"`
	AddressLine2         *string    `db:"address_line2" json:"addressLine2,omitempty"`
	City                 *string    `db:"city" json:"city,omitempty"`
	State                *string    `db:"state" json:"state,omitempty"`
	Zip                  *string    `db:"zip" json:"zip,omitempty"`
	InsurancePrimaryID   *uuid.UUID `db:"insurance_primary_id" json:"insurancePrimaryId,omitempty"`
	InsuranceSecondaryID *uuid.UUID `db:"insurance_secondary_id" json:"insuranceSecondaryId,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updatedAt"`
	CreatedBy            *string    `db:"created_by" json:"-"`
	UpdatedBy            *string    `db:"updated_by" json:"-"`
}

// DTO is the transport representation of a patient. Null text fields are
// surfaced as empty strings, so the mapping is one-way: a DTO cannot tell
// "was empty" from "was null".
type DTO struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	FirstName      string    `json:"firstName"`
	MiddleName     string    `json:"middleName"`
	LastName       string    `json:"lastName"`
	Gender         string    `json:"gender"`
	DOB            string    `json:"dob"`
	PhonePrimary   string    `json:"phonePrimary"`
	PhoneSecondary string    `json:"phoneSecondary"`
	Email          string    `json:"email"`
	AddressLine1   string    `json:"addressLine1"`
	AddressLine2   string    `json:"addressLine2"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Zip            string    `json:"zip"`
}

// ToDTO projects a patient to its transport representation.
func (p *Patient) ToDTO() DTO {
	return DTO{
		ID:             p.ID,
		Title:          strVal(p.Title),
		FirstName:      p.FirstName,
		MiddleName:     strVal(p.MiddleName),
		LastName:       p.LastName,
		Gender:         strVal(p.Gender),
		DOB:            FormatDOB(p.DOB),
		PhonePrimary:   strVal(p.PhonePrimary),
		PhoneSecondary: strVal(p.PhoneSecondary),
		Email:          strVal(p.Email),
		AddressLine1:   strVal(p.AddressLine1),
		AddressLine2:   strVal(p.AddressLine2),
		City:           strVal(p.City),
		State:          strVal(p.State),
		Zip:            strVal(p.Zip),
	}
}

// Summary projects the subset of fields shown in search result rows.
func (p *Patient) Summary() map[string]interface{} {
	return map[string]interface{}{
		"id":        p.ID,
		"firstName": p.FirstName,
		"lastName":  p.LastName,
		"dob":       FormatDOB(p.DOB),
		"phone":     strVal(p.PhonePrimary),
		"address":   strVal(p.AddressLine1),
		"city":      strVal(p.City),
		"state":     strVal(p.State),
		"zip":       strVal(p.Zip),
		"email":     strVal(p.Email),
	}
}

// FormatDOB renders a date of birth as MM/DD/YYYY, or "" when absent.
func FormatDOB(dob *time.Time) string {
	if dob == nil {
		return ""
	}
	return dob.Format(DOBFormat)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
