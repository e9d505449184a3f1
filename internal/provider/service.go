package provider

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/internal/provider/entity"
	providerrepo "github.com/ovaphlow/carelink/service-core/internal/provider/repo"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

type Service struct {
	sessions *database.Sessions
}

func NewService(sessions *database.Sessions) *Service {
	return &Service{sessions: sessions}
}

// Create registers the provider role for p.AccountID. The account must exist
// (database.ErrForeignKeyViolation otherwise) and may hold one provider row
// (database.ErrDuplicateKey on the second).
func (s *Service) Create(ctx context.Context, p entity.Params) (int64, error) {
	const op = "provider.create"
	if err := p.Validate(op); err != nil {
		return 0, err
	}
	var id int64
	err := s.sessions.Run(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		id, err = providerrepo.NewProviderRepo(tx).Create(ctx, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, accountID int64) (*entity.Provider, error) {
	var p *entity.Provider
	err := s.sessions.Run(ctx, "provider.get", func(tx *sqlx.Tx) error {
		var err error
		p, err = providerrepo.NewProviderRepo(tx).GetByID(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
