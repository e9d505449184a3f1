package recipient

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/recipient/entity"
	recipientrepo "github.com/ovaphlow/carelink/service-core/internal/recipient/repo"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// Service covers the recipient role and its address.
type Service struct {
	sessions *database.Sessions
}

func NewService(sessions *database.Sessions) *Service {
	return &Service{sessions: sessions}
}

// CreateRecipient registers the recipient role for an existing account.
func (s *Service) CreateRecipient(ctx context.Context, p entity.RecipientParams) (int64, error) {
	const op = "recipient.create"
	var id int64
	err := s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		id, err = recipientrepo.NewRecipientRepo(tx).Create(ctx, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) GetRecipient(ctx context.Context, accountID int64) (*entity.Recipient, error) {
	var rc *entity.Recipient
	err := s.sessions.Run(ctx, "recipient.get", func(tx *sqlx.Tx) error {
		var err error
		rc, err = recipientrepo.NewRecipientRepo(tx).GetByID(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rc, nil
}

// CreateAddress stores the one address of recipient p.RecipientID and returns
// its key. A second address fails with database.ErrDuplicateKey.
func (s *Service) CreateAddress(ctx context.Context, p entity.AddressParams) (int64, error) {
	const op = "address.create"
	if err := p.Validate(op); err != nil {
		return 0, err
	}
	var id int64
	err := s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		id, err = recipientrepo.NewAddressRepo(tx).Create(ctx, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) GetAddress(ctx context.Context, recipientID int64) (*entity.Address, error) {
	var a *entity.Address
	err := s.sessions.Run(ctx, "address.get", func(tx *sqlx.Tx) error {
		var err error
		a, err = recipientrepo.NewAddressRepo(tx).GetByRecipient(ctx, recipientID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
