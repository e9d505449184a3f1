// Package schema owns the relational layout of the service and creates it on
// start-up.
package schema

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// lockKey identifies the advisory lock that serialises concurrent EnsureSchema
// calls across processes.
const lockKey int64 = 0x63617265 // "care"

// Statements are ordered parent first so every foreign key target exists
// before it is referenced.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
  account_id BIGSERIAL PRIMARY KEY,
  email VARCHAR(255) NOT NULL UNIQUE,
  given_name VARCHAR(50) NOT NULL,
  surname VARCHAR(50) NOT NULL,
  city VARCHAR(50),
  phone VARCHAR(15),
  profile_description TEXT,
  credential_secret VARCHAR(255) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS providers (
  account_id BIGINT PRIMARY KEY REFERENCES accounts(account_id) ON DELETE CASCADE,
  photo BYTEA,
  gender VARCHAR(10),
  caregiving_type VARCHAR(50) NOT NULL,
  hourly_rate NUMERIC(10, 2) NOT NULL CHECK (hourly_rate >= 0)
)`,
	`CREATE TABLE IF NOT EXISTS recipients (
  account_id BIGINT PRIMARY KEY REFERENCES accounts(account_id) ON DELETE CASCADE,
  house_rules TEXT
)`,
	`CREATE TABLE IF NOT EXISTS addresses (
  recipient_id BIGINT PRIMARY KEY REFERENCES recipients(account_id),
  house_number VARCHAR(10) NOT NULL,
  street VARCHAR(100) NOT NULL,
  town VARCHAR(50) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS jobs (
  job_id BIGSERIAL PRIMARY KEY,
  recipient_id BIGINT NOT NULL REFERENCES recipients(account_id),
  required_caregiving_type VARCHAR(50) NOT NULL,
  other_requirements TEXT,
  date_posted DATE NOT NULL DEFAULT CURRENT_DATE
)`,
	`CREATE TABLE IF NOT EXISTS job_applications (
  provider_id BIGINT NOT NULL REFERENCES providers(account_id),
  job_id BIGINT NOT NULL REFERENCES jobs(job_id),
  date_applied DATE NOT NULL DEFAULT CURRENT_DATE,
  PRIMARY KEY (provider_id, job_id)
)`,
	`CREATE TABLE IF NOT EXISTS appointments (
  appointment_id BIGSERIAL PRIMARY KEY,
  provider_id BIGINT NOT NULL REFERENCES providers(account_id),
  recipient_id BIGINT NOT NULL REFERENCES recipients(account_id),
  appointment_date DATE NOT NULL,
  appointment_time TIME NOT NULL,
  work_hours INT NOT NULL CHECK (work_hours > 0),
  status VARCHAR(20) NOT NULL DEFAULT 'Pending'
)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_recipient_id ON jobs (recipient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_job_applications_job_id ON job_applications (job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_provider_id ON appointments (provider_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_recipient_id ON appointments (recipient_id)`,
}

// Manager creates the tables the repositories rely on.
type Manager struct {
	sessions *database.Sessions
}

func NewManager(sessions *database.Sessions) *Manager {
	return &Manager{sessions: sessions}
}

// EnsureSchema creates every table and index that does not exist yet. It never
// drops or alters anything, so calling it again is a no-op. Concurrent callers
// queue on a transaction-scoped advisory lock; the DDL itself commits as one
// unit.
func (m *Manager) EnsureSchema(ctx context.Context) error {
	return m.sessions.Run(ctx, "schema.ensure", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
			return err
		}
		for _, stmt := range Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
