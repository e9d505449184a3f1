package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/provider/entity"
)

type ProviderRepo struct {
	q sqlx.ExtContext
}

func NewProviderRepo(q sqlx.ExtContext) *ProviderRepo { return &ProviderRepo{q: q} }

// Create inserts the provider row for an existing account and returns the
// shared key.
func (r *ProviderRepo) Create(ctx context.Context, p entity.Params) (int64, error) {
	const q = `INSERT INTO providers (account_id, photo, gender, caregiving_type, hourly_rate)
		VALUES ($1, $2, $3, $4, $5) RETURNING account_id`
	// an empty []byte would be stored as a zero-length bytea, not NULL
	var photo any
	if len(p.Photo) > 0 {
		photo = p.Photo
	}
	var id int64
	if err := r.q.QueryRowxContext(ctx, q, p.AccountID, photo, p.Gender, p.CaregivingType, p.HourlyRate).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, accountID int64) (*entity.Provider, error) {
	const q = `SELECT account_id, photo, gender, caregiving_type, hourly_rate FROM providers WHERE account_id=$1`
	var row entity.Provider
	if err := sqlx.GetContext(ctx, r.q, &row, q, accountID); err != nil {
		return nil, err
	}
	return &row, nil
}
