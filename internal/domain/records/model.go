package records

import (
	"time"

	"github.com/google/uuid"
)

// MedicalNote maps to the medical_notes table. AuthorID references the
// staff member who wrote the note.
type MedicalNote struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patientId"`
	AuthorID  *uuid.UUID `db:"author_id" json:"authorId,omitempty"`
	Type      *string    `db:"type" json:"type,omitempty"`
	Content   string     `db:"content" json:"content"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

// Document maps to the documents table. Only metadata lives here; the
// file itself sits wherever FilePath points.
type Document struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patientId"`
	UploadedByID *uuid.UUID `db:"uploaded_by_id" json:"uploadedById,omitempty"`
	FileName     string     `db:"file_name" json:"fileName"`
	FileType     *string    `db:"file_type" json:"fileType,omitempty"`
	FilePath     *string    `db:"file_path" json:"filePath,omitempty"`
	DocumentType *string    `db:"document_type" json:"documentType,omitempty"`
	UploadedAt   time.Time  `db:"uploaded_at" json:"uploadedAt"`
}
