package records

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/clinova/clinova/pkg/validate"
)

// ErrNotFound reports a missing note or document id.
var ErrNotFound = errors.New("record not found")

type Service struct {
	notes     NoteRepository
	documents DocumentRepository
	directory Directory
}

func NewService(notes NoteRepository, documents DocumentRepository, directory Directory) *Service {
	return &Service{notes: notes, documents: documents, directory: directory}
}

func (s *Service) requirePatient(ctx context.Context, id uuid.UUID) error {
	ok, err := s.directory.PatientExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return validate.Errorf("patient not found")
	}
	return nil
}

func (s *Service) requireAuthor(ctx context.Context, id uuid.UUID) error {
	ok, err := s.directory.StaffExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return validate.Errorf("author not found")
	}
	return nil
}

// -- Notes --

// NoteInput is the creation payload for a medical note.
type NoteInput struct {
	AuthorID *uuid.UUID `json:"authorId"`
	Type     string     `json:"type"`
	Content  string     `json:"content"`
}

func (s *Service) CreateNote(ctx context.Context, patientID uuid.UUID, in *NoteInput) (*MedicalNote, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, validate.Errorf("content is required")
	}
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	if in.AuthorID != nil {
		if err := s.requireAuthor(ctx, *in.AuthorID); err != nil {
			return nil, err
		}
	}
	n := MedicalNote{
		PatientID: patientID,
		AuthorID:  in.AuthorID,
		Type:      nilIfBlank(in.Type),
		Content:   in.Content,
	}
	if err := s.notes.Create(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*MedicalNote, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *Service) ListNotes(ctx context.Context, patientID uuid.UUID) ([]*MedicalNote, error) {
	return s.notes.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteNote(ctx context.Context, id uuid.UUID) error {
	ok, err := s.notes.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.notes.Delete(ctx, id)
}

// -- Documents --

// DocumentInput is the creation payload for a document metadata record.
type DocumentInput struct {
	UploadedByID *uuid.UUID `json:"uploadedById"`
	FileName     string     `json:"fileName"`
	FileType     string     `json:"fileType"`
	FilePath     string     `json:"filePath"`
	DocumentType string     `json:"documentType"`
}

func (s *Service) CreateDocument(ctx context.Context, patientID uuid.UUID, in *DocumentInput) (*Document, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return nil, validate.Errorf("fileName is required")
	}
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	d := Document{
		PatientID:    patientID,
		UploadedByID: in.UploadedByID,
		FileName:     strings.TrimSpace(in.FileName),
		FileType:     nilIfBlank(in.FileType),
		FilePath:     nilIfBlank(in.FilePath),
		DocumentType: nilIfBlank(in.DocumentType),
	}
	if err := s.documents.Create(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.documents.GetByID(ctx, id)
}

func (s *Service) ListDocuments(ctx context.Context, patientID uuid.UUID) ([]*Document, error) {
	return s.documents.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	ok, err := s.documents.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.documents.Delete(ctx, id)
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
