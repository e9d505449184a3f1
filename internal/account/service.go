package account

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/account/entity"
	accountrepo "github.com/ovaphlow/carelink/service-core/internal/account/repo"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// Service runs each account operation in its own persistence session.
type Service struct {
	sessions *database.Sessions
}

func NewService(sessions *database.Sessions) *Service {
	return &Service{sessions: sessions}
}

// Create inserts an account and returns its id. A taken email fails with
// database.ErrDuplicateKey.
func (s *Service) Create(ctx context.Context, p entity.Params) (int64, error) {
	const op = "account.create"
	if err := p.Validate(op); err != nil {
		return 0, err
	}
	var id int64
	err := s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		id, err = accountrepo.NewAccountRepo(tx).Create(ctx, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the stored row including CredentialSecret. Redaction is the
// caller's job.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Account, error) {
	const op = "account.get"
	var a *entity.Account
	err := s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		a, err = accountrepo.NewAccountRepo(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces all mutable fields of account id.
func (s *Service) Update(ctx context.Context, id int64, p entity.Params) error {
	const op = "account.update"
	if err := p.Validate(op); err != nil {
		return err
	}
	return s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		n, err := accountrepo.NewAccountRepo(tx).Update(ctx, id, p)
		if err != nil {
			return err
		}
		if n == 0 {
			return database.NotFound(op, fmt.Sprintf("account %d", id))
		}
		return nil
	})
}

// Delete removes account id. Provider and recipient rows cascade; jobs,
// applications, appointments and addresses do not, so an account whose role
// rows are still referenced fails with database.ErrForeignKeyViolation.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "account.delete"
	return s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		n, err := accountrepo.NewAccountRepo(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return database.NotFound(op, fmt.Sprintf("account %d", id))
		}
		return nil
	})
}
