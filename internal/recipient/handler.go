package recipient

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/internal/recipient/entity"
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

type RecipientRequest struct {
	AccountID  int64   `json:"account_id" validate:"required,gt=0"`
	HouseRules *string `json:"house_rules"`
}

type AddressRequest struct {
	RecipientID int64  `json:"recipient_id" validate:"required,gt=0"`
	HouseNumber string `json:"house_number" validate:"required,max=10"`
	Street      string `json:"street" validate:"required,max=100"`
	Town        string `json:"town" validate:"required,max=50"`
}

func (h *Handler) CreateRecipient(w http.ResponseWriter, r *http.Request) {
	var req RecipientRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	id, err := h.svc.CreateRecipient(r.Context(), entity.RecipientParams{AccountID: req.AccountID, HouseRules: req.HouseRules})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, utilities.CreatedResponse{ID: id, Message: "Recipient created."})
}

func (h *Handler) GetRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	rc, err := h.svc.GetRecipient(r.Context(), id)
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]*entity.Recipient{"recipient": rc})
}

func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	id, err := h.svc.CreateAddress(r.Context(), entity.AddressParams{
		RecipientID: req.RecipientID,
		HouseNumber: req.HouseNumber,
		Street:      req.Street,
		Town:        req.Town,
	})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, utilities.CreatedResponse{ID: id, Message: "Address created."})
}

func (h *Handler) GetAddress(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	a, err := h.svc.GetAddress(r.Context(), id)
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]*entity.Address{"address": a})
}
