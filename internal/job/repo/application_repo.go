package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/job/entity"
)

type ApplicationRepo struct {
	q sqlx.ExtContext
}

func NewApplicationRepo(q sqlx.ExtContext) *ApplicationRepo { return &ApplicationRepo{q: q} }

// Create records the application; date_applied is left to the column default.
func (r *ApplicationRepo) Create(ctx context.Context, k entity.ApplicationKey) (entity.ApplicationKey, error) {
	const q = `INSERT INTO job_applications (provider_id, job_id) VALUES ($1, $2) RETURNING provider_id, job_id`
	var out entity.ApplicationKey
	if err := r.q.QueryRowxContext(ctx, q, k.ProviderID, k.JobID).StructScan(&out); err != nil {
		return entity.ApplicationKey{}, err
	}
	return out, nil
}

func (r *ApplicationRepo) Get(ctx context.Context, k entity.ApplicationKey) (*entity.Application, error) {
	const q = `SELECT provider_id, job_id, date_applied FROM job_applications WHERE provider_id=$1 AND job_id=$2`
	var row entity.Application
	if err := sqlx.GetContext(ctx, r.q, &row, q, k.ProviderID, k.JobID); err != nil {
		return nil, err
	}
	return &row, nil
}
