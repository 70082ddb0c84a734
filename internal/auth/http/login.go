package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

type LoginHandler struct {
	CodeService *service.CodeService
}

// ServeHTTP godoc
//
//	@Summary		Request Login Code
//	@Description	Emails a one-time 8 digit code to the address. The identity is created on first use.
//	@Description	Only one code per address can be live at a time.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body	authsdk.LoginRequest	true	"Address to send the code to"
//	@Success		204		"Code sent"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"code, message, details"
//	@Failure		409		{object}	authsdk.ErrorResponse			"A code for this address is still live"
//	@Failure		429		{object}	authsdk.ErrorResponse			"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if err := req.Validate(); err != nil {
		authsdk.NewValidationError(err).WriteError(w)
		return
	}

	err := h.CodeService.IssueCode(ctx, req.Email)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrCodePending):
		authsdk.ErrCodePending.WriteError(w)
	case errors.Is(err, service.ErrValidation):
		authsdk.NewValidationError(req.Validate()).WriteError(w)
	default:
		log.Error("failed to issue email code", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}
