package provider

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

// NewRepoPG returns a Postgres-backed provider repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const providerCols = `id, title, first_name, last_name, specialty, phone, email,
	active, in_practice, created_at, updated_at, created_by, updated_by`

var sortColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"specialty": "specialty",
	"email":     "email",
}

func (r *repoPG) scan(row pgx.Row) (*Provider, error) {
	var p Provider
	err := row.Scan(&p.ID, &p.Title, &p.FirstName, &p.LastName, &p.Specialty, &p.Phone, &p.Email,
		&p.Active, &p.InPractice, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy)
	return &p, err
}

func (r *repoPG) Search(ctx context.Context, f SearchFilters, pg pagination.Params) ([]*Provider, int, error) {
	query := `SELECT ` + providerCols + ` FROM providers WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM providers WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.FirstName != "" {
		pattern := "%" + f.FirstName + "%"
		if f.FirstNamePrefix {
			pattern = f.FirstName + "%"
		}
		query += fmt.Sprintf(` AND first_name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND first_name ILIKE $%d`, idx)
		args = append(args, pattern)
		idx++
	}
	if f.LastName != "" {
		query += fmt.Sprintf(` AND last_name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND last_name ILIKE $%d`, idx)
		args = append(args, "%"+f.LastName+"%")
		idx++
	}
	if f.Specialty != "" {
		query += fmt.Sprintf(` AND specialty ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND specialty ILIKE $%d`, idx)
		args = append(args, "%"+f.Specialty+"%")
		idx++
	}
	if f.InPractice != nil {
		query += fmt.Sprintf(` AND in_practice = $%d`, idx)
		countQuery += fmt.Sprintf(` AND in_practice = $%d`, idx)
		args = append(args, *f.InPractice)
		idx++
	}
	if f.Active != nil {
		query += fmt.Sprintf(` AND active = $%d`, idx)
		countQuery += fmt.Sprintf(` AND active = $%d`, idx)
		args = append(args, *f.Active)
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
	var items []*Provider
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+providerCols+` FROM providers WHERE id = $1`, id))
}

func (r *repoPG) Create(ctx context.Context, p *Provider) error {
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO providers (id, title, first_name, last_name, specialty, phone, email,
			active, in_practice, created_at, updated_at, created_by, updated_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.Title, p.FirstName, p.LastName, p.Specialty, p.Phone, p.Email,
		p.Active, p.InPractice, p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.UpdatedBy)
	return err
}

func (r *repoPG) Update(ctx context.Context, p *Provider) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE providers SET title=$2, first_name=$3, last_name=$4, specialty=$5,
			phone=$6, email=$7, active=$8, in_practice=$9, updated_at=NOW(), updated_by=$10
		WHERE id = $1`,
		p.ID, p.Title, p.FirstName, p.LastName, p.Specialty,
		p.Phone, p.Email, p.Active, p.InPractice, p.UpdatedBy)
	return err
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM providers WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
