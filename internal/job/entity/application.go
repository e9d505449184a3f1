package entity

import "github.com/ovaphlow/carelink/service-core/pkg/database"

// ApplicationKey identifies one provider's application to one job.
type ApplicationKey struct {
	ProviderID int64 `db:"provider_id" json:"provider_id"`
	JobID      int64 `db:"job_id" json:"job_id"`
}

type Application struct {
	ApplicationKey
	DateApplied database.Date `db:"date_applied" json:"date_applied"`
}
