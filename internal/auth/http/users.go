package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

type UsersHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Get Identity
//	@Description	Returns an identity. Callers may read their own identity; admins may read any.
//	@Tags			Identity
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userId	path		int						true	"Identity id"
//	@Success		200		{object}	authsdk.UserResponse	"id, email, isAdmin, createdAt"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"code, message, details"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{userId} [get].
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	identity, err := h.IdentityService.GetIdentity(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			authsdk.ErrNotFound.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("failed to load identity", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		IsAdmin:   identity.IsAdmin,
		CreatedAt: identity.CreatedAt,
	})
}
