package httpx

import (
	"net/http"
	"strings"
)

// ExtractCarrier pulls the credential out of the Authorization header. Both
// "Bearer <token>" and a bare token are accepted.
func ExtractCarrier(r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return "", false
	}

	if scheme, rest, ok := strings.Cut(authz, " "); ok && strings.EqualFold(scheme, "Bearer") {
		authz = strings.TrimSpace(rest)
	}
	if authz == "" || strings.ContainsAny(authz, " \t") {
		return "", false
	}
	return authz, true
}

// WriteBearerError writes an RFC 6750 bearer challenge with a JSON body.
func WriteBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
