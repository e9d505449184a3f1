package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/appointment/entity"
)

// appointment_time is read as text; the driver would otherwise hand back a
// time.Time on year zero.
const selectAppointment = `SELECT appointment_id, provider_id, recipient_id, appointment_date,
	appointment_time::text AS appointment_time, work_hours, status FROM appointments WHERE appointment_id=$1`

type AppointmentRepo struct {
	q sqlx.ExtContext
}

func NewAppointmentRepo(q sqlx.ExtContext) *AppointmentRepo { return &AppointmentRepo{q: q} }

func (r *AppointmentRepo) Create(ctx context.Context, p entity.Params) (int64, error) {
	const q = `INSERT INTO appointments (provider_id, recipient_id, appointment_date, appointment_time, work_hours, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING appointment_id`
	var id int64
	err := r.q.QueryRowxContext(ctx, q,
		p.ProviderID, p.RecipientID, p.Date.String(), p.Time, p.WorkHours, string(p.Status),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	var row entity.Appointment
	if err := sqlx.GetContext(ctx, r.q, &row, selectAppointment, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetForUpdate reads the row and holds its lock until the session ends.
func (r *AppointmentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Appointment, error) {
	var row entity.Appointment
	if err := sqlx.GetContext(ctx, r.q, &row, selectAppointment+` FOR UPDATE`, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status entity.Status) (int64, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE appointments SET status=$1 WHERE appointment_id=$2`, string(status), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
