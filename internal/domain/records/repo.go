package records

import (
	"context"

	"github.com/google/uuid"
)

// NoteRepository is the persistence port for medical notes.
type NoteRepository interface {
	Create(ctx context.Context, n *MedicalNote) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalNote, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MedicalNote, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// DocumentRepository is the persistence port for document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Directory guards note and document creation against dangling patient
// and staff references.
type Directory interface {
	PatientExists(ctx context.Context, id uuid.UUID) (bool, error)
	StaffExists(ctx context.Context, id uuid.UUID) (bool, error)
}
