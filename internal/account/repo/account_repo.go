package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/account/entity"
)

// AccountRepo issues account statements on whatever session it is bound to.
type AccountRepo struct {
	q sqlx.ExtContext
}

func NewAccountRepo(q sqlx.ExtContext) *AccountRepo { return &AccountRepo{q: q} }

// Create inserts a new account row. Returns new ID.
func (r *AccountRepo) Create(ctx context.Context, p entity.Params) (int64, error) {
	const q = `INSERT INTO accounts (email,given_name,surname,city,phone,profile_description,credential_secret)
		  VALUES (:email,:given_name,:surname,:city,:phone,:profile_description,:credential_secret) RETURNING account_id`
	rows, err := sqlx.NamedQueryContext(ctx, r.q, q, p)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return 0, errors.New("no id returned")
}

// GetByID fetches the full row, credential secret included, or sql.ErrNoRows.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	const q = `SELECT account_id, email, given_name, surname, city, phone, profile_description, credential_secret
	  FROM accounts WHERE account_id=$1`
	var row entity.Account
	if err := sqlx.GetContext(ctx, r.q, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Update replaces every mutable field and reports the affected row count.
func (r *AccountRepo) Update(ctx context.Context, id int64, p entity.Params) (int64, error) {
	const q = `UPDATE accounts
	   SET email=$2, given_name=$3, surname=$4, city=$5, phone=$6, profile_description=$7, credential_secret=$8
	 WHERE account_id=$1`
	res, err := r.q.ExecContext(ctx, q, id, p.Email, p.GivenName, p.Surname, p.City, p.Phone, p.ProfileDescription, p.CredentialSecret)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the account; providers and recipients rows go with it.
func (r *AccountRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM accounts WHERE account_id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
