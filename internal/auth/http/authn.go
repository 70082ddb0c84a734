package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

type authContextKey struct{}

// AuthContextFrom returns the authorization context stored by
// AuthnMiddleware. ok is false on unauthenticated routes.
func AuthContextFrom(ctx context.Context) (domain.AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey{}).(domain.AuthContext)
	return ac, ok
}

// AuthnMiddleware validates the request's carrier against the token store and
// attaches the derived authorization context. Failures answer 401 with a
// bearer challenge.
func AuthnMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			carrier, ok := httpx.ExtractCarrier(r)
			if !ok {
				authsdk.ErrUnauthenticated.WriteError(w)
				return
			}

			res := auth.ValidateCarrier(r.Context(), carrier)
			if !res.IsValid {
				httpx.WriteBearerError(w, res.ErrorMessage)
				return
			}

			ac := *res.Credentials
			ctx := context.WithValue(r.Context(), authContextKey{}, ac)
			ctx = httpx.WithSubject(ctx, strconv.FormatInt(ac.IdentityID, 10))
			ctx = slogx.With(ctx, "identity_id", ac.IdentityID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSelfOrAdmin guards routes addressing an identity by the named path
// value. Must run after AuthnMiddleware.
func RequireSelfOrAdmin(param string) httpx.Middleware {
	return guard(param, service.RequireSelfOrAdmin)
}

// RequireAdministersOrAdmin guards routes addressing a resource by the named
// path value. Must run after AuthnMiddleware.
func RequireAdministersOrAdmin(param string) httpx.Middleware {
	return guard(param, service.RequireAdministersOrAdmin)
}

func guard(param string, check func(domain.AuthContext, int64) error) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := AuthContextFrom(r.Context())
			if !ok {
				authsdk.ErrUnauthenticated.WriteError(w)
				return
			}

			id, ok := pathID(w, r, param)
			if !ok {
				return
			}

			if err := check(ac, id); err != nil {
				slogx.FromContext(r.Context()).Info("access denied",
					slogx.Tags("auth"),
					"param", param,
					"target", id,
				)
				authsdk.ErrAccessDenied.WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// pathID parses a positive integer path value, answering 400 otherwise.
func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(param), 10, 64)
	if err != nil || id <= 0 {
		(&authsdk.ValidationError{
			Message: "request validation failed",
			Details: map[string]string{param: "must be a positive integer"},
		}).WriteError(w)
		return 0, false
	}
	return id, true
}
