package staff

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

// NewRepoPG returns a Postgres-backed staff repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const staffCols = `id, first_name, last_name, job_title, phone, email, user_id, created_at, updated_at`

var sortColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"jobTitle":  "job_title",
}

func (r *repoPG) scan(row pgx.Row) (*Staff, error) {
	var st Staff
	err := row.Scan(&st.ID, &st.FirstName, &st.LastName, &st.JobTitle, &st.Phone, &st.Email,
		&st.UserID, &st.CreatedAt, &st.UpdatedAt)
	return &st, err
}

func (r *repoPG) List(ctx context.Context, pg pagination.Params) ([]*Staff, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, err
	}
	col := pagination.OrderColumn(pg.SortBy, sortColumns, "last_name")
	dir := "ASC"
	if pg.Descending() {
		dir = "DESC"
	}
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM staff ORDER BY %s %s LIMIT $1 OFFSET $2`, staffCols, col, dir),
		pg.Limit(), pg.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Staff
	for rows.Next() {
		st, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, st)
	}
	return items, total, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
}

func (r *repoPG) Create(ctx context.Context, st *Staff) error {
	st.ID = uuid.New()
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO staff (id, first_name, last_name, job_title, phone, email, user_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		st.ID, st.FirstName, st.LastName, st.JobTitle, st.Phone, st.Email, st.UserID, st.CreatedAt, st.UpdatedAt)
	return err
}

func (r *repoPG) Update(ctx context.Context, st *Staff) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE staff SET first_name=$2, last_name=$3, job_title=$4, phone=$5, email=$6, user_id=$7, updated_at=NOW()
		WHERE id = $1`,
		st.ID, st.FirstName, st.LastName, st.JobTitle, st.Phone, st.Email, st.UserID)
	return err
}

type userRepoPG struct{ pool *pgxpool.Pool }

// NewUserRepoPG returns a Postgres-backed user repository.
func NewUserRepoPG(pool *pgxpool.Pool) UserRepository { return &userRepoPG{pool: pool} }

func (r *userRepoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, role, staff_id, created_at, updated_at
		FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.StaffID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, role, staff_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.StaffID, u.CreatedAt, u.UpdatedAt)
	return err
}
