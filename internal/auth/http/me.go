package http

import (
	"net/http"

	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
)

// MeHandler godoc
//
//	@Summary		Current Caller
//	@Description	Returns the authorization facts derived for the presented token: identity, admin flag and administered resources.
//	@Tags			Identity
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MeResponse		"tokenId, identityId, isAdmin, administeredResourceIds"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/me [get].
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac, ok := AuthContextFrom(r.Context())
		if !ok {
			authsdk.ErrUnauthenticated.WriteError(w)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{
			TokenID:                 ac.TokenID,
			IdentityID:              ac.IdentityID,
			IsAdmin:                 ac.IsAdmin,
			AdministeredResourceIDs: ac.AdministeredResourceIDs,
		})
	}
}
