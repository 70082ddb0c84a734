package http

import (
	"net/http"

	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
)

// StatusHandler godoc
//
//	@Summary		Service Status
//	@Description	Minimal up check kept for clients that poll the root path.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.StatusResponse	"up"
//	@Router			/ [get].
func StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.StatusResponse{Up: true})
	}
}
