package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinova/clinova/pkg/pagination"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a Postgres-backed patient repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, title, first_name, middle_name, last_name, dob, gender,
	phone_primary, phone_secondary, email, address_line1, address_line2,
	city, state, zip, insurance_primary_id, insurance_secondary_id,
	created_at, updated_at, created_by, updated_by`

// sortColumns whitelists sortBy values against actual column names.
var sortColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"dob":       "dob",
	"city":      "city",
	"state":     "state",
	"zip":       "zip",
	"email":     "email",
}

func (r *repoPG) scan(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Title, &p.FirstName, &p.MiddleName, &p.LastName, &p.DOB, &p.Gender,
		&p.PhonePrimary, &p.PhoneSecondary, &p.Email, &p.AddressLine1, &p.AddressLine2,
		&p.City, &p.State, &p.Zip, &p.InsurancePrimaryID, &p.InsuranceSecondaryID,
		&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy)
	return &p, err
}

func (r *repoPG) Search(ctx context.Context, f SearchFilters, pg pagination.Params) ([]*Patient, int, error) {
	query := `SELECT ` + patientCols + ` FROM patients WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM patients WHERE 1=1`
	var args []interface{}
	idx := 1

	// Name filters are anchored at the start; the rest match anywhere.
	if f.FirstName != "" {
		query += fmt.Sprintf(` AND first_name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND first_name ILIKE $%d`, idx)
		args = append(args, f.FirstName+"%")
		idx++
	}
	if f.LastName != "" {
		query += fmt.Sprintf(` AND last_name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND last_name ILIKE $%d`, idx)
		args = append(args, f.LastName+"%")
		idx++
	}
	if f.DOB != nil {
		query += fmt.Sprintf(` AND dob = $%d`, idx)
		countQuery += fmt.Sprintf(` AND dob = $%d`, idx)
		args = append(args, *f.DOB)
		idx++
	}
	if f.Phone != "" {
		query += fmt.Sprintf(` AND phone_primary ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND phone_primary ILIKE $%d`, idx)
		args = append(args, "%"+f.Phone+"%")
		idx++
	}
	if f.Email != "" {
		query += fmt.Sprintf(` AND email ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND email ILIKE $%d`, idx)
		args = append(args, "%"+f.Email+"%")
		idx++
	}
	if f.City != "" {
		query += fmt.Sprintf(` AND city ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND city ILIKE $%d`, idx)
		args = append(args, "%"+f.City+"%")
		idx++
	}
	if f.State != "" {
		query += fmt.Sprintf(` AND state ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND state ILIKE $%d`, idx)
		args = append(args, "%"+f.State+"%")
		idx++
	}
	if f.Zip != "" {
		query += fmt.Sprintf(` AND zip ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND zip ILIKE $%d`, idx)
		args = append(args, "%"+f.Zip+"%")
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col := pagination.OrderColumn(pg.SortBy, sortColumns, "last_name")
	dir := "ASC"
	if pg.Descending() {
		dir = "DESC"
	}
	query += fmt.Sprintf(` ORDER BY %s %s LIMIT $%d OFFSET $%d`, col, dir, idx, idx+1)
	args = append(args, pg.Limit(), pg.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, title, first_name, middle_name, last_name, dob, gender,
			phone_primary, phone_secondary, email, address_line1, address_line2,
			city, state, zip, insurance_primary_id, insurance_secondary_id,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		p.ID, p.Title, p.FirstName, p.MiddleName, p.LastName, p.DOB, p.Gender,
		p.PhonePrimary, p.PhoneSecondary, p.Email, p.AddressLine1, p.AddressLine2,
		p.City, p.State, p.Zip, p.InsurancePrimaryID, p.InsuranceSecondaryID,
		p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.UpdatedBy)
	return err
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patients SET title=$2, first_name=$3, middle_name=$4, last_name=$5, dob=$6, gender=$7,
			phone_primary=$8, phone_secondary=$9, email=$10, address_line1=$11, address_line2=$12,
			city=$13, state=$14, zip=$15, insurance_primary_id=$16, insurance_secondary_id=$17,
			updated_at=NOW(), updated_by=$18
		WHERE id = $1`,
		p.ID, p.Title, p.FirstName, p.MiddleName, p.LastName, p.DOB, p.Gender,
		p.PhonePrimary, p.PhoneSecondary, p.Email, p.AddressLine1, p.AddressLine2,
		p.City, p.State, p.Zip, p.InsurancePrimaryID, p.InsuranceSecondaryID,
		p.UpdatedBy)
	return err
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
