package job

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/internal/job/entity"
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

type JobRequest struct {
	RecipientID            int64   `json:"recipient_id" validate:"required,gt=0"`
	RequiredCaregivingType string  `json:"required_caregiving_type" validate:"required,max=50"`
	OtherRequirements      *string `json:"other_requirements"`
}

type ApplicationRequest struct {
	ProviderID int64 `json:"provider_id" validate:"required,gt=0"`
	JobID      int64 `json:"job_id" validate:"required,gt=0"`
}

// ApplicationCreated echoes the composite key of a new application.
type ApplicationCreated struct {
	entity.ApplicationKey
	Message string `json:"message"`
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	id, err := h.svc.CreateJob(r.Context(), entity.JobParams{
		RecipientID:            req.RecipientID,
		RequiredCaregivingType: req.RequiredCaregivingType,
		OtherRequirements:      req.OtherRequirements,
	})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, utilities.CreatedResponse{ID: id, Message: "Job created."})
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	j, err := h.svc.GetJob(r.Context(), id)
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]*entity.Job{"job": j})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplicationRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	key, err := h.svc.Apply(r.Context(), entity.ApplicationKey{ProviderID: req.ProviderID, JobID: req.JobID})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, ApplicationCreated{ApplicationKey: key, Message: "Application created."})
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	providerID, err := utilities.PathID(r, "provider_id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	jobID, err := utilities.PathID(r, "job_id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	a, err := h.svc.GetApplication(r.Context(), entity.ApplicationKey{ProviderID: providerID, JobID: jobID})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]*entity.Application{"application": a})
}
