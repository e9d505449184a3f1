package entity

// Recipient extends an account with the profile of someone requesting care.
type Recipient struct {
	AccountID  int64   `db:"account_id" json:"account_id"`
	HouseRules *string `db:"house_rules" json:"house_rules"`
}

type RecipientParams struct {
	AccountID  int64
	HouseRules *string
}
