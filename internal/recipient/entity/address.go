package entity

import (
	"strings"

	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// Address is the single home address of a recipient, keyed by the recipient.
type Address struct {
	RecipientID int64  `db:"recipient_id" json:"recipient_id"`
	HouseNumber string `db:"house_number" json:"house_number"`
	Street      string `db:"street" json:"street"`
	Town        string `db:"town" json:"town"`
}

type AddressParams struct {
	RecipientID int64
	HouseNumber string
	Street      string
	Town        string
}

func (p AddressParams) Validate(op string) error {
	switch {
	case strings.TrimSpace(p.HouseNumber) == "":
		return database.Invalid(op, "house_number is required")
	case strings.TrimSpace(p.Street) == "":
		return database.Invalid(op, "street is required")
	case strings.TrimSpace(p.Town) == "":
		return database.Invalid(op, "town is required")
	}
	return nil
}
