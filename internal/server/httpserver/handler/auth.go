package handler

import (
	"net/http"

	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

// Login handles POST /auth.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	res, err := h.authSvc.Login(r.Context(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		logger.L(r.Context()).Info("login rejected", "email", req.Email, "reason", domain.GetErrorCode(err))
		h.handleServiceError(w, r, err)
		return
	}

	logger.L(r.Context()).Info("login succeeded", "email", req.Email)
	h.writeJSON(w, r, http.StatusOK, AuthResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC(),
	})
}
