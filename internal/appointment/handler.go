package appointment

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/internal/appointment/entity"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
	"github.com/ovaphlow/carelink/service-core/pkg/utilities"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(sessions *database.Sessions, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(sessions), logger: logger}
}

// AppointmentRequest books an appointment. Work hours are checked by the
// service so a zero value reports the same error over HTTP as in code.
type AppointmentRequest struct {
	ProviderID  int64         `json:"provider_id" validate:"required,gt=0"`
	RecipientID int64         `json:"recipient_id" validate:"required,gt=0"`
	Date        database.Date `json:"appointment_date"`
	Time        string        `json:"appointment_time" validate:"required"`
	WorkHours   int           `json:"work_hours"`
	Status      string        `json:"status" validate:"omitempty,oneof=Pending Confirmed Completed Cancelled"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Completed Cancelled"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	id, err := h.svc.Create(r.Context(), entity.Params{
		ProviderID:  req.ProviderID,
		RecipientID: req.RecipientID,
		Date:        req.Date,
		Time:        req.Time,
		WorkHours:   req.WorkHours,
		Status:      entity.Status(req.Status),
	})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, utilities.CreatedResponse{ID: id, Message: "Appointment created."})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]*entity.Appointment{"appointment": a})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	var req StatusRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	a, err := h.svc.UpdateStatus(r.Context(), id, entity.Status(req.Status))
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	h.logger.Infow("appointment status changed", "appointment", id, "status", a.Status)
	utilities.WriteJSON(w, http.StatusOK, map[string]*entity.Appointment{"appointment": a})
}
