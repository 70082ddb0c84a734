package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

type AuthenticateHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Exchange Code for API Token
//	@Description	Consumes an emailed code and returns a signed API token in the Authorization response header.
//	@Description	Rejections do not say which check failed, except for expired codes.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.AuthenticateRequest		true	"Address and emailed code"
//	@Success		200		{object}	authsdk.AuthenticateResponse	"token_type, expires_in"
//	@Header			200		{string}	Authorization					"Signed API token"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"code, message, details"
//	@Failure		401		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		429		{object}	authsdk.ErrorResponse			"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/authenticate [post].
func (h *AuthenticateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.AuthenticateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if err := req.Validate(); err != nil {
		authsdk.NewValidationError(err).WriteError(w)
		return
	}

	issued, err := h.TokenService.ExchangeCode(ctx, req.Email, req.EmailToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			authsdk.ErrInvalidGrant.WriteError(w)
		case errors.Is(err, service.ErrCodeExpired):
			authsdk.ErrCodeExpired.WriteError(w)
		default:
			log.Error("failed to exchange email code", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.Header().Set("Authorization", issued.Carrier)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthenticateResponse{
		TokenType: "Bearer",
		ExpiresIn: int(issued.TTL.Seconds()),
	})
}
