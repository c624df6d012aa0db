package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Time-of-day fields are stored as "HH:MM" strings and validated on the
// way in; the calendar view concatenates them with the appointment date.
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// UnassignedTitle is the calendar event title when no patient is linked.
const UnassignedTitle = "(Unassigned)"

// Appointment maps to the appointments table.
type Appointment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ProviderID      uuid.UUID  `db:"provider_id" json:"providerId"`
	PatientID       *uuid.UUID `db:"patient_id" json:"patientId,omitempty"`
	RoomID          *uuid.UUID `db:"room_id" json:"roomId,omitempty"`
	NoteID          *uuid.UUID `db:"note_id" json:"noteId,omitempty"`
	Date            time.Time  `db:"date" json:"date"`
	TimeStart       string     `db:"time_start" json:"timeStart"`
	TimeEnd         string     `db:"time_end" json:"timeEnd"`
	DurationMinutes int        `db:"duration_minutes" json:"durationMinutes"`
	AppointmentType *string    `db:"appointment_type" json:"appointmentType,omitempty"`
	Status          *string    `db:"status" json:"status,omitempty"`
	Reason          *string    `db:"reason" json:"reason,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
	CreatedBy       *string    `db:"created_by" json:"-"`
	UpdatedBy       *string    `db:"updated_by" json:"-"`
}

// DTO is the transport representation of a single appointment.
type DTO struct {
	ID              uuid.UUID  `json:"id"`
	Date            string     `json:"date"`
	TimeStart       string     `json:"timeStart"`
	TimeEnd         string     `json:"timeEnd"`
	Duration        int        `json:"duration"`
	AppointmentType string     `json:"appointmentType"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason"`
	ProviderID      uuid.UUID  `json:"providerId"`
	PatientID       *uuid.UUID `json:"patientId"`
	RoomID          *uuid.UUID `json:"roomId"`
}

func (a *Appointment) ToDTO() DTO {
	return DTO{
		ID:              a.ID,
		Date:            a.Date.Format(DateFormat),
		TimeStart:       a.TimeStart,
		TimeEnd:         a.TimeEnd,
		Duration:        a.DurationMinutes,
		AppointmentType: strVal(a.AppointmentType),
		Status:          strVal(a.Status),
		Reason:          strVal(a.Reason),
		ProviderID:      a.ProviderID,
		PatientID:       a.PatientID,
		RoomID:          a.RoomID,
	}
}

// Event is a calendar entry for the schedule view.
type Event struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	Status          string    `json:"status"`
	AppointmentType string    `json:"appointmentType"`
	Reason          string    `json:"reason"`
	ProviderID      uuid.UUID `json:"providerId"`
}

// ToEvent builds a calendar event; title is the linked patient's name
// when one exists.
func (a *Appointment) ToEvent(patientName string) Event {
	title := patientName
	if title == "" {
		title = UnassignedTitle
	}
	day := a.Date.Format(DateFormat)
	return Event{
		ID:              a.ID,
		Title:           title,
		Start:           day + "T" + a.TimeStart,
		End:             day + "T" + a.TimeEnd,
		Status:          strVal(a.Status),
		AppointmentType: strVal(a.AppointmentType),
		Reason:          strVal(a.Reason),
		ProviderID:      a.ProviderID,
	}
}

// Room maps to the rooms table.
type Room struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Floor     *string   `db:"floor" json:"floor,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
