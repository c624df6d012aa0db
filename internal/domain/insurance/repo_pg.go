package insurance

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

// NewRepoPG returns a Postgres-backed insurance repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const insCols = `id, provider_name, policy_number, group_number, type, phone, address, created_at, updated_at`

var sortColumns = map[string]string{
	"providerName": "provider_name",
	"type":         "type",
}

func (r *repoPG) scan(row pgx.Row) (*Insurance, error) {
	var ins Insurance
	err := row.Scan(&ins.ID, &ins.ProviderName, &ins.PolicyNumber, &ins.GroupNumber,
		&ins.Type, &ins.Phone, &ins.Address, &ins.CreatedAt, &ins.UpdatedAt)
	return &ins, err
}

func (r *repoPG) List(ctx context.Context, providerName string, pg pagination.Params) ([]*Insurance, int, error) {
	query := `SELECT ` + insCols + ` FROM insurances WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM insurances WHERE 1=1`
	var args []interface{}
	idx := 1

	if providerName != "" {
		query += fmt.Sprintf(` AND provider_name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND provider_name ILIKE $%d`, idx)
		args = append(args, "%"+providerName+"%")
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col := pagination.OrderColumn(pg.SortBy, sortColumns, "provider_name")
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
	var items []*Insurance
	for rows.Next() {
		ins, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ins)
	}
	return items, total, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Insurance, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+insCols+` FROM insurances WHERE id = $1`, id))
}

func (r *repoPG) Create(ctx context.Context, ins *Insurance) error {
	ins.ID = uuid.New()
	now := time.Now().UTC()
	ins.CreatedAt = now
	ins.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO insurances (id, provider_name, policy_number, group_number, type, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		ins.ID, ins.ProviderName, ins.PolicyNumber, ins.GroupNumber, ins.Type, ins.Phone, ins.Address,
		ins.CreatedAt, ins.UpdatedAt)
	return err
}

func (r *repoPG) Update(ctx context.Context, ins *Insurance) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE insurances SET provider_name=$2, policy_number=$3, group_number=$4, type=$5,
			phone=$6, address=$7, updated_at=NOW()
		WHERE id = $1`,
		ins.ID, ins.ProviderName, ins.PolicyNumber, ins.GroupNumber, ins.Type, ins.Phone, ins.Address)
	return err
}
