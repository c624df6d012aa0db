package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// AppointmentRepository is the persistence port for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Appointment, error)
}

// RoomRepository is the persistence port for rooms.
type RoomRepository interface {
	List(ctx context.Context) ([]*Room, error)
	Create(ctx context.Context, r *Room) error
}

// PatientDirectory gives the scheduler read access to the patient
// registry without importing its domain package.
type PatientDirectory interface {
	PatientExists(ctx context.Context, id uuid.UUID) (bool, error)
	// PatientNames returns "First Last" display names for the given ids;
	// missing ids are simply absent from the result.
	PatientNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// ProviderDirectory gives the scheduler read access to the provider
// registry.
type ProviderDirectory interface {
	ProviderExists(ctx context.Context, id uuid.UUID) (bool, error)
}
