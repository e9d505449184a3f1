package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/recipient/entity"
)

type RecipientRepo struct {
	q sqlx.ExtContext
}

func NewRecipientRepo(q sqlx.ExtContext) *RecipientRepo { return &RecipientRepo{q: q} }

func (r *RecipientRepo) Create(ctx context.Context, p entity.RecipientParams) (int64, error) {
	const q = `INSERT INTO recipients (account_id, house_rules) VALUES ($1, $2) RETURNING account_id`
	var id int64
	if err := r.q.QueryRowxContext(ctx, q, p.AccountID, p.HouseRules).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RecipientRepo) GetByID(ctx context.Context, accountID int64) (*entity.Recipient, error) {
	var row entity.Recipient
	if err := sqlx.GetContext(ctx, r.q, &row, `SELECT account_id, house_rules FROM recipients WHERE account_id=$1`, accountID); err != nil {
		return nil, err
	}
	return &row, nil
}
