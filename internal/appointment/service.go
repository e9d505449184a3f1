package appointment

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/appointment/entity"
	appointmentrepo "github.com/ovaphlow/carelink/service-core/internal/appointment/repo"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

type Service struct {
	sessions *database.Sessions
}

func NewService(sessions *database.Sessions) *Service {
	return &Service{sessions: sessions}
}

// Create books an appointment between a provider and a recipient. Arguments
// are checked before a session is opened; a non-positive WorkHours never
// reaches the store.
func (s *Service) Create(ctx context.Context, p entity.Params) (int64, error) {
	const op = "appointment.create"
	p, err := p.Normalize(op)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		id, err = appointmentrepo.NewAppointmentRepo(tx).Create(ctx, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Appointment, error) {
	var a *entity.Appointment
	err := s.sessions.Run(ctx, "appointment.get", func(tx *sqlx.Tx) error {
		var err error
		a, err = appointmentrepo.NewAppointmentRepo(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateStatus moves appointment id to next and returns the updated row.
// The row stays locked between the read and the write so two concurrent
// transitions cannot both succeed from the same state.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next entity.Status) (*entity.Appointment, error) {
	const op = "appointment.update_status"
	if !next.Valid() {
		return nil, database.Invalid(op, "unknown status %q", next)
	}
	var a *entity.Appointment
	err := s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		r := appointmentrepo.NewAppointmentRepo(tx)
		cur, err := r.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !cur.Status.CanTransitionTo(next) {
			return database.Invalid(op, "cannot move appointment %d from %s to %s", id, cur.Status, next)
		}
		if _, err := r.UpdateStatus(ctx, id, next); err != nil {
			return err
		}
		cur.Status = next
		a = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
