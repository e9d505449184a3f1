package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/recipient/entity"
)

type AddressRepo struct {
	q sqlx.ExtContext
}

func NewAddressRepo(q sqlx.ExtContext) *AddressRepo { return &AddressRepo{q: q} }

// Create stores the address and returns its key, the recipient id.
func (r *AddressRepo) Create(ctx context.Context, p entity.AddressParams) (int64, error) {
	const q = `INSERT INTO addresses (recipient_id, house_number, street, town)
		VALUES ($1, $2, $3, $4) RETURNING recipient_id`
	var id int64
	if err := r.q.QueryRowxContext(ctx, q, p.RecipientID, p.HouseNumber, p.Street, p.Town).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AddressRepo) GetByRecipient(ctx context.Context, recipientID int64) (*entity.Address, error) {
	const q = `SELECT recipient_id, house_number, street, town FROM addresses WHERE recipient_id=$1`
	var row entity.Address
	if err := sqlx.GetContext(ctx, r.q, &row, q, recipientID); err != nil {
		return nil, err
	}
	return &row, nil
}
