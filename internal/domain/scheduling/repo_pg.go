package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

// NewAppointmentRepoPG returns a Postgres-backed appointment repository.
func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const apptCols = `id, provider_id, patient_id, room_id, note_id, date,
	time_start, time_end, duration_minutes, appointment_type, status, reason,
	created_at, updated_at, created_by, updated_by`

func (r *appointmentRepoPG) scan(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.ProviderID, &a.PatientID, &a.RoomID, &a.NoteID, &a.Date,
		&a.TimeStart, &a.TimeEnd, &a.DurationMinutes, &a.AppointmentType, &a.Status, &a.Reason,
		&a.CreatedAt, &a.UpdatedAt, &a.CreatedBy, &a.UpdatedBy)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, provider_id, patient_id, room_id, note_id, date,
			time_start, time_end, duration_minutes, appointment_type, status, reason,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		a.ID, a.ProviderID, a.PatientID, a.RoomID, a.NoteID, a.Date,
		a.TimeStart, a.TimeEnd, a.DurationMinutes, a.AppointmentType, a.Status, a.Reason,
		a.CreatedAt, a.UpdatedAt, a.CreatedBy, a.UpdatedBy)
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointments SET provider_id=$2, patient_id=$3, room_id=$4, date=$5,
			time_start=$6, time_end=$7, duration_minutes=$8, appointment_type=$9,
			status=$10, reason=$11, updated_at=NOW(), updated_by=$12
		WHERE id = $1`,
		a.ID, a.ProviderID, a.PatientID, a.RoomID, a.Date,
		a.TimeStart, a.TimeEnd, a.DurationMinutes, a.AppointmentType,
		a.Status, a.Reason, a.UpdatedBy)
	return err
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (r *appointmentRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM appointments WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *appointmentRepoPG) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+apptCols+` FROM appointments WHERE provider_id = $1 ORDER BY date, time_start`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}

type roomRepoPG struct{ pool *pgxpool.Pool }

// NewRoomRepoPG returns a Postgres-backed room repository.
func NewRoomRepoPG(pool *pgxpool.Pool) RoomRepository { return &roomRepoPG{pool: pool} }

func (r *roomRepoPG) List(ctx context.Context) ([]*Room, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, floor, created_at, updated_at FROM rooms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Floor, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &rm)
	}
	return items, nil
}

func (r *roomRepoPG) Create(ctx context.Context, rm *Room) error {
	rm.ID = uuid.New()
	now := time.Now().UTC()
	rm.CreatedAt = now
	rm.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rooms (id, name, floor, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)`,
		rm.ID, rm.Name, rm.Floor, rm.CreatedAt, rm.UpdatedAt)
	return err
}

type directoryPG struct{ pool *pgxpool.Pool }

// NewDirectoryPG exposes patient, provider and staff existence lookups
// for cross-domain referential checks.
func NewDirectoryPG(pool *pgxpool.Pool) *directoryPG { return &directoryPG{pool: pool} }

func (d *directoryPG) PatientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := d.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (d *directoryPG) ProviderExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := d.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM providers WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (d *directoryPG) StaffExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := d.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM staff WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (d *directoryPG) PatientNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := d.pool.Query(ctx, `SELECT id, first_name, last_name FROM patients WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var first, last string
		if err := rows.Scan(&id, &first, &last); err != nil {
			return nil, err
		}
		names[id] = first + " " + last
	}
	return names, nil
}
