package http

import (
	"net/http"

	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

type ResourceMembersHandler struct {
	MembershipService *service.MembershipService
}

// ServeHTTP godoc
//
//	@Summary		List Resource Members
//	@Description	Lists the identities linked to a resource. Administrators of the resource and admins only.
//	@Tags			Resources
//	@Produce		json
//	@Security		BearerAuth
//	@Param			resourceId	path		int								true	"Resource id"
//	@Success		200			{object}	authsdk.ResourceMembersResponse	"resourceId, members"
//	@Failure		400			{object}	authsdk.ValidationErrorResponse	"code, message, details"
//	@Failure		401			{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		403			{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/resources/{resourceId}/members [get].
func (h *ResourceMembersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resourceID, ok := pathID(w, r, "resourceId")
	if !ok {
		return
	}

	memberships, err := h.MembershipService.ListResourceMembers(ctx, resourceID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list resource members", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	resp := authsdk.ResourceMembersResponse{
		ResourceID: resourceID,
		Members:    make([]authsdk.MemberResponse, 0, len(memberships)),
	}
	for _, m := range memberships {
		resp.Members = append(resp.Members, authsdk.MemberResponse{
			IdentityID: m.IdentityID,
			Role:       string(m.Role),
			CreatedAt:  m.CreatedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
