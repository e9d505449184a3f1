package job

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/job/entity"
	jobrepo "github.com/ovaphlow/carelink/service-core/internal/job/repo"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// Service covers job postings and the applications providers make to them.
type Service struct {
	sessions *database.Sessions
}

func NewService(sessions *database.Sessions) *Service {
	return &Service{sessions: sessions}
}

// CreateJob posts a job for an existing recipient.
func (s *Service) CreateJob(ctx context.Context, p entity.JobParams) (int64, error) {
	const op = "job.create"
	if err := p.Validate(op); err != nil {
		return 0, err
	}
	var id int64
	err := s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		id, err = jobrepo.NewJobRepo(tx).Create(ctx, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) GetJob(ctx context.Context, id int64) (*entity.Job, error) {
	var j *entity.Job
	err := s.sessions.Run(ctx, "job.get", func(tx *sqlx.Tx) error {
		var err error
		j, err = jobrepo.NewJobRepo(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Apply records that provider k.ProviderID applied to job k.JobID. Each pair
// can apply once; the second attempt fails with database.ErrDuplicateKey.
// Either id naming no row fails with database.ErrForeignKeyViolation.
func (s *Service) Apply(ctx context.Context, k entity.ApplicationKey) (entity.ApplicationKey, error) {
	const op = "application.create"
	var out entity.ApplicationKey
	err := s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		out, err = jobrepo.NewApplicationRepo(tx).Create(ctx, k)
		return err
	})
	if err != nil {
		return entity.ApplicationKey{}, err
	}
	return out, nil
}

func (s *Service) GetApplication(ctx context.Context, k entity.ApplicationKey) (*entity.Application, error) {
	var a *entity.Application
	err := s.sessions.Run(ctx, "application.get", func(tx *sqlx.Tx) error {
		var err error
		a, err = jobrepo.NewApplicationRepo(tx).Get(ctx, k)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
