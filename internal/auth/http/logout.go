package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Revokes the presented API token. Later requests with it are rejected.
//	@Tags			Authentication
//	@Security		BearerAuth
//	@Success		204	"Token revoked"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ac, ok := AuthContextFrom(ctx)
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	err := h.AuthService.Logout(ctx, ac)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrInvalidToken):
		authsdk.ErrInvalidToken.WriteError(w)
	default:
		slogx.FromContext(ctx).Error("failed to revoke token", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}
