package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type noteRepoPG struct{ pool *pgxpool.Pool }

// NewNoteRepoPG returns a Postgres-backed medical note repository.
func NewNoteRepoPG(pool *pgxpool.Pool) NoteRepository { return &noteRepoPG{pool: pool} }

const noteCols = `id, patient_id, author_id, type, content, created_at, updated_at`

func (r *noteRepoPG) scan(row pgx.Row) (*MedicalNote, error) {
	var n MedicalNote
	err := row.Scan(&n.ID, &n.PatientID, &n.AuthorID, &n.Type, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	return &n, err
}

func (r *noteRepoPG) Create(ctx context.Context, n *MedicalNote) error {
	n.ID = uuid.New()
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medical_notes (id, patient_id, author_id, type, content, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		n.ID, n.PatientID, n.AuthorID, n.Type, n.Content, n.CreatedAt, n.UpdatedAt)
	return err
}

func (r *noteRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalNote, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+noteCols+` FROM medical_notes WHERE id = $1`, id))
}

func (r *noteRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MedicalNote, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+noteCols+` FROM medical_notes WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MedicalNote
	for rows.Next() {
		n, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, nil
}

func (r *noteRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM medical_notes WHERE id = $1`, id)
	return err
}

func (r *noteRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM medical_notes WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

type documentRepoPG struct{ pool *pgxpool.Pool }

// NewDocumentRepoPG returns a Postgres-backed document metadata repository.
func NewDocumentRepoPG(pool *pgxpool.Pool) DocumentRepository { return &documentRepoPG{pool: pool} }

const docCols = `id, patient_id, uploaded_by_id, file_name, file_type, file_path, document_type, uploaded_at`

func (r *documentRepoPG) scan(row pgx.Row) (*Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.PatientID, &d.UploadedByID, &d.FileName, &d.FileType,
		&d.FilePath, &d.DocumentType, &d.UploadedAt)
	return &d, err
}

func (r *documentRepoPG) Create(ctx context.Context, d *Document) error {
	d.ID = uuid.New()
	d.UploadedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (id, patient_id, uploaded_by_id, file_name, file_type, file_path, document_type, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.PatientID, d.UploadedByID, d.FileName, d.FileType, d.FilePath, d.DocumentType, d.UploadedAt)
	return err
}

func (r *documentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+docCols+` FROM documents WHERE id = $1`, id))
}

func (r *documentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Document, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+docCols+` FROM documents WHERE patient_id = $1 ORDER BY uploaded_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Document
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, nil
}

func (r *documentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

func (r *documentRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
