package account

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/internal/account/entity"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
	"github.com/ovaphlow/carelink/service-core/pkg/utilities"
)

// Handler exposes HTTP endpoints for account operations.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(sessions *database.Sessions, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(sessions), logger: logger}
}

// AccountRequest is the body of create and update.
type AccountRequest struct {
	Email              string  `json:"email" validate:"required,email,max=255"`
	GivenName          string  `json:"given_name" validate:"required,max=50"`
	Surname            string  `json:"surname" validate:"required,max=50"`
	City               *string `json:"city" validate:"omitempty,max=50"`
	Phone              *string `json:"phone_number" validate:"omitempty,max=15"`
	ProfileDescription *string `json:"profile_description"`
	Password           string  `json:"password" validate:"required,max=255"`
}

func (req AccountRequest) params() entity.Params {
	return entity.Params{
		Email:              req.Email,
		GivenName:          req.GivenName,
		Surname:            req.Surname,
		City:               req.City,
		Phone:              req.Phone,
		ProfileDescription: req.ProfileDescription,
		CredentialSecret:   req.Password,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	id, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, utilities.CreatedResponse{ID: id, Message: fmt.Sprintf("Account %s created.", req.GivenName)})
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
	utilities.WriteJSON(w, http.StatusOK, map[string]entity.AccountView{"account": a.View()})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	var req AccountRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	if err := h.svc.Update(r.Context(), id, req.params()); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Account %d updated", id)})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Account %d deleted", id)})
}
