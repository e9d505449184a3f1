package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// Provider extends an account with the profile of someone offering care.
// AccountID is both its key and the reference to accounts.
type Provider struct {
	AccountID      int64           `db:"account_id" json:"account_id"`
	Photo          []byte          `db:"photo" json:"photo,omitempty"`
	Gender         *string         `db:"gender" json:"gender"`
	CaregivingType string          `db:"caregiving_type" json:"caregiving_type"`
	HourlyRate     decimal.Decimal `db:"hourly_rate" json:"hourly_rate"`
}

type Params struct {
	AccountID      int64
	Photo          []byte
	Gender         *string
	CaregivingType string
	HourlyRate     decimal.Decimal
}

// Validate checks the fields the store cannot. An AccountID that names no
// account is left to the foreign key.
func (p Params) Validate(op string) error {
	switch {
	case strings.TrimSpace(p.CaregivingType) == "":
		return database.Invalid(op, "caregiving_type is required")
	case p.HourlyRate.IsNegative():
		return database.Invalid(op, "hourly_rate must not be negative, got %s", p.HourlyRate)
	case !p.HourlyRate.Equal(p.HourlyRate.Truncate(2)):
		return database.Invalid(op, "hourly_rate has more than two decimal places: %s", p.HourlyRate)
	}
	return nil
}
