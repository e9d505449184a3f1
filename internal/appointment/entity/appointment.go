package entity

import (
	"time"

	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an appointment in s may move to next.
// Completed and Cancelled are final.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID          int64         `db:"appointment_id" json:"id"`
	ProviderID  int64         `db:"provider_id" json:"provider_id"`
	RecipientID int64         `db:"recipient_id" json:"recipient_id"`
	Date        database.Date `db:"appointment_date" json:"appointment_date"`
	Time        string        `db:"appointment_time" json:"appointment_time"`
	WorkHours   int           `db:"work_hours" json:"work_hours"`
	Status      Status        `db:"status" json:"status"`
}

// Params describes a new appointment. An empty Status means StatusPending.
type Params struct {
	ProviderID  int64
	RecipientID int64
	Date        database.Date
	Time        string
	WorkHours   int
	Status      Status
}

var timeLayouts = []string{"15:04:05", "15:04"}

// NormalizeTime parses HH:MM or HH:MM:SS and renders it as HH:MM:SS.
// 24:00 is accepted as end of day, as the TIME column does.
func NormalizeTime(s string) (string, bool) {
	if s == "24:00" || s == "24:00:00" {
		return "24:00:00", true
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), true
		}
	}
	return "", false
}

// Normalize validates p and returns a copy with the default status applied
// and the time in HH:MM:SS form.
func (p Params) Normalize(op string) (Params, error) {
	switch {
	case p.WorkHours <= 0:
		return p, database.Invalid(op, "work_hours must be positive, got %d", p.WorkHours)
	case p.Date.IsZero():
		return p, database.Invalid(op, "appointment_date is required")
	}
	t, ok := NormalizeTime(p.Time)
	if !ok {
		return p, database.Invalid(op, "appointment_time %q: want HH:MM or HH:MM:SS", p.Time)
	}
	p.Time = t
	if p.Status == "" {
		p.Status = StatusPending
	}
	if !p.Status.Valid() {
		return p, database.Invalid(op, "unknown status %q", p.Status)
	}
	return p, nil
}
