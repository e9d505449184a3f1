package entity

import (
	"strings"

	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// Job is a care need posted by a recipient.
type Job struct {
	ID                     int64         `db:"job_id" json:"id"`
	RecipientID            int64         `db:"recipient_id" json:"recipient_id"`
	RequiredCaregivingType string        `db:"required_caregiving_type" json:"required_caregiving_type"`
	OtherRequirements      *string       `db:"other_requirements" json:"other_requirements"`
	DatePosted             database.Date `db:"date_posted" json:"date_posted"`
}

type JobParams struct {
	RecipientID            int64
	RequiredCaregivingType string
	OtherRequirements      *string
}

func (p JobParams) Validate(op string) error {
	switch {
	case strings.TrimSpace(p.RequiredCaregivingType) == "":
		return database.Invalid(op, "required_caregiving_type is required")
	}
	return nil
}
