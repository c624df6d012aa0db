package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinova/clinova/pkg/validate"
)

// ErrNotFound reports a missing appointment id.
var ErrNotFound = errors.New("appointment not found")

const defaultDurationMinutes = 15

type Service struct {
	appointments AppointmentRepository
	rooms        RoomRepository
	patients     PatientDirectory
	providers    ProviderDirectory
}

func NewService(appts AppointmentRepository, rooms RoomRepository, patients PatientDirectory, providers ProviderDirectory) *Service {
	return &Service{appointments: appts, rooms: rooms, patients: patients, providers: providers}
}

// Schedule returns calendar events for a provider between start and end
// inclusive. The bounds arrive as date-time strings from the calendar
// widget; only the date portion (first ten characters) counts. Unset
// bounds default to a one week window starting today.
func (s *Service) Schedule(ctx context.Context, providerID uuid.UUID, startRaw, endRaw string) ([]Event, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	var err error
	if startRaw != "" {
		if start, err = parseDatePrefix(startRaw); err != nil {
			return nil, validate.Errorf("invalid start date: %s", startRaw)
		}
	}
	if endRaw != "" {
		if end, err = parseDatePrefix(endRaw); err != nil {
			return nil, validate.Errorf("invalid end date: %s", endRaw)
		}
	}

	appts, err := s.appointments.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	// The window filter runs here rather than in SQL so both bounds are
	// inclusive regardless of the column's time component.
	var inWindow []*Appointment
	var patientIDs []uuid.UUID
	for _, a := range appts {
		if a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		inWindow = append(inWindow, a)
		if a.PatientID != nil {
			patientIDs = append(patientIDs, *a.PatientID)
		}
	}

	names, err := s.patients.PatientNames(ctx, patientIDs)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(inWindow))
	for _, a := range inWindow {
		var name string
		if a.PatientID != nil {
			name = names[*a.PatientID]
		}
		events = append(events, a.ToEvent(name))
	}
	return events, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// CreateInput is the appointment creation payload.
type CreateInput struct {
	ProviderID      *uuid.UUID `json:"providerId"`
	PatientID       *uuid.UUID `json:"patientId"`
	RoomID          *uuid.UUID `json:"roomId"`
	Date            string     `json:"date"`
	TimeStart       string     `json:"timeStart"`
	TimeEnd         string     `json:"timeEnd"`
	DurationMinutes *int       `json:"durationMinutes"`
	AppointmentType string     `json:"appointmentType"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason"`
}

func (s *Service) Create(ctx context.Context, in *CreateInput, actor string) (*Appointment, error) {
	if in.ProviderID == nil || in.PatientID == nil {
		return nil, validate.Errorf("missing patient or provider id")
	}
	if ok, err := s.providers.ProviderExists(ctx, *in.ProviderID); err != nil {
		return nil, err
	} else if !ok {
		return nil, validate.Errorf("provider not found")
	}
	if ok, err := s.patients.PatientExists(ctx, *in.PatientID); err != nil {
		return nil, err
	} else if !ok {
		return nil, validate.Errorf("patient not found")
	}

	date, err := time.Parse(DateFormat, in.Date)
	if err != nil {
		return nil, validate.Errorf("invalid date: %s", in.Date)
	}
	if err := validateTime(in.TimeStart); err != nil {
		return nil, err
	}
	if err := validateTime(in.TimeEnd); err != nil {
		return nil, err
	}

	duration := defaultDurationMinutes
	if in.DurationMinutes != nil {
		duration = *in.DurationMinutes
	}

	a := Appointment{
		ProviderID:      *in.ProviderID,
		PatientID:       in.PatientID,
		RoomID:          in.RoomID,
		Date:            date,
		TimeStart:       in.TimeStart,
		TimeEnd:         in.TimeEnd,
		DurationMinutes: duration,
		AppointmentType: nilIfBlank(in.AppointmentType),
		Status:          nilIfBlank(in.Status),
		Reason:          nilIfBlank(in.Reason),
	}
	if actor != "" {
		a.CreatedBy = &actor
		a.UpdatedBy = &actor
	}
	if err := s.appointments.Create(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateInput applies a partial update: nil fields keep their stored
// values, so the omitted/cleared distinction is explicit in the type.
type UpdateInput struct {
	ProviderID      *uuid.UUID `json:"providerId"`
	PatientID       *uuid.UUID `json:"patientId"`
	RoomID          *uuid.UUID `json:"roomId"`
	Date            *string    `json:"date"`
	TimeStart       *string    `json:"timeStart"`
	TimeEnd         *string    `json:"timeEnd"`
	DurationMinutes *int       `json:"durationMinutes"`
	AppointmentType *string    `json:"appointmentType"`
	Status          *string    `json:"status"`
	Reason          *string    `json:"reason"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in *UpdateInput, actor string) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.ProviderID != nil {
		if ok, err := s.providers.ProviderExists(ctx, *in.ProviderID); err != nil {
			return nil, err
		} else if !ok {
			return nil, validate.Errorf("provider not found")
		}
		a.ProviderID = *in.ProviderID
	}
	if in.PatientID != nil {
		if ok, err := s.patients.PatientExists(ctx, *in.PatientID); err != nil {
			return nil, err
		} else if !ok {
			return nil, validate.Errorf("patient not found")
		}
		a.PatientID = in.PatientID
	}
	if in.RoomID != nil {
		a.RoomID = in.RoomID
	}
	if in.Date != nil {
		date, err := time.Parse(DateFormat, *in.Date)
		if err != nil {
			return nil, validate.Errorf("invalid date: %s", *in.Date)
		}
		a.Date = date
	}
	if in.TimeStart != nil {
		if err := validateTime(*in.TimeStart); err != nil {
			return nil, err
		}
		a.TimeStart = *in.TimeStart
	}
	if in.TimeEnd != nil {
		if err := validateTime(*in.TimeEnd); err != nil {
			return nil, err
		}
		a.TimeEnd = *in.TimeEnd
	}
	if in.DurationMinutes != nil {
		a.DurationMinutes = *in.DurationMinutes
	}
	if in.AppointmentType != nil {
		a.AppointmentType = nilIfBlank(*in.AppointmentType)
	}
	if in.Status != nil {
		a.Status = nilIfBlank(*in.Status)
	}
	if in.Reason != nil {
		a.Reason = nilIfBlank(*in.Reason)
	}
	if actor != "" {
		a.UpdatedBy = &actor
	}

	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.appointments.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context) ([]*Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) CreateRoom(ctx context.Context, rm *Room) error {
	if rm.Name == "" {
		return validate.Errorf("name is required")
	}
	return s.rooms.Create(ctx, rm)
}

// parseDatePrefix reads the date portion of a date-time string.
func parseDatePrefix(raw string) (time.Time, error) {
	if len(raw) < len(DateFormat) {
		return time.Time{}, fmt.Errorf("short date: %s", raw)
	}
	return time.Parse(DateFormat, raw[:len(DateFormat)])
}

func validateTime(v string) error {
	if _, err := time.Parse(TimeFormat, v); err != nil {
		return validate.Errorf("invalid time: %s", v)
	}
	return nil
}

func nilIfBlank(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
