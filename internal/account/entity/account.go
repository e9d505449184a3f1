package entity

import (
	"strings"

	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// Account is a row of the accounts table: the identity and contact profile
// shared by providers and recipients. CredentialSecret is returned as stored;
// render View() to anything outside the process.
type Account struct {
	ID                 int64   `db:"account_id"`
	Email              string  `db:"email"`
	GivenName          string  `db:"given_name"`
	Surname            string  `db:"surname"`
	City               *string `db:"city"`
	Phone              *string `db:"phone"`
	ProfileDescription *string `db:"profile_description"`
	CredentialSecret   string  `db:"credential_secret"`
}

// AccountView is the client-facing projection of Account, without the secret.
type AccountView struct {
	ID                 int64   `json:"id"`
	Email              string  `json:"email"`
	GivenName          string  `json:"given_name"`
	Surname            string  `json:"surname"`
	City               *string `json:"city"`
	Phone              *string `json:"phone_number"`
	ProfileDescription *string `json:"profile_description"`
}

func (a *Account) View() AccountView {
	return AccountView{
		ID:                 a.ID,
		Email:              a.Email,
		GivenName:          a.GivenName,
		Surname:            a.Surname,
		City:               a.City,
		Phone:              a.Phone,
		ProfileDescription: a.ProfileDescription,
	}
}

// Params holds the seven mutable fields. Create and Update both take the full
// set; there is no partial update.
type Params struct {
	Email              string  `db:"email"`
	GivenName          string  `db:"given_name"`
	Surname            string  `db:"surname"`
	City               *string `db:"city"`
	Phone              *string `db:"phone"`
	ProfileDescription *string `db:"profile_description"`
	CredentialSecret   string  `db:"credential_secret"`
}

// Validate checks the required fields for op.
func (p Params) Validate(op string) error {
	switch {
	case strings.TrimSpace(p.Email) == "":
		return database.Invalid(op, "email is required")
	case strings.TrimSpace(p.GivenName) == "":
		return database.Invalid(op, "given_name is required")
	case strings.TrimSpace(p.Surname) == "":
		return database.Invalid(op, "surname is required")
	case p.CredentialSecret == "":
		return database.Invalid(op, "credential_secret is required")
	}
	return nil
}
