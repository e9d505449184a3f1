package provider

import (
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/internal/provider/entity"
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

// ProviderRequest registers the provider role of an account. Photo is base64.
type ProviderRequest struct {
	AccountID      int64            `json:"account_id" validate:"required,gt=0"`
	Photo          []byte           `json:"photo"`
	Gender         *string          `json:"gender" validate:"omitempty,max=10"`
	CaregivingType string           `json:"caregiving_type" validate:"required,max=50"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate" validate:"required"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProviderRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	id, err := h.svc.Create(r.Context(), entity.Params{
		AccountID:      req.AccountID,
		Photo:          req.Photo,
		Gender:         req.Gender,
		CaregivingType: req.CaregivingType,
		HourlyRate:     *req.HourlyRate,
	})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, utilities.CreatedResponse{ID: id, Message: "Provider created."})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]*entity.Provider{"provider": p})
}
