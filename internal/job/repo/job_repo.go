package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/job/entity"
)

type JobRepo struct {
	q sqlx.ExtContext
}

func NewJobRepo(q sqlx.ExtContext) *JobRepo { return &JobRepo{q: q} }

// Create inserts a job; date_posted is left to the column default.
func (r *JobRepo) Create(ctx context.Context, p entity.JobParams) (int64, error) {
	const q = `INSERT INTO jobs (recipient_id, required_caregiving_type, other_requirements)
		VALUES ($1, $2, $3) RETURNING job_id`
	var id int64
	if err := r.q.QueryRowxContext(ctx, q, p.RecipientID, p.RequiredCaregivingType, p.OtherRequirements).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *JobRepo) GetByID(ctx context.Context, id int64) (*entity.Job, error) {
	const q = `SELECT job_id, recipient_id, required_caregiving_type, other_requirements, date_posted
		FROM jobs WHERE job_id=$1`
	var row entity.Job
	if err := sqlx.GetContext(ctx, r.q, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}
