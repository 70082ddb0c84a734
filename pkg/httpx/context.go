package httpx

import (
	"context"
	"net/http"
)

type ctxKey string

// CtxKeySubject holds a stable identifier of the authenticated caller. It is
// what per-user rate limits key on.
const CtxKeySubject ctxKey = "subject"

// WithSubject records the authenticated caller on the context.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, CtxKeySubject, subject)
}

// SubjectFromRequest returns the authenticated caller, or "".
func SubjectFromRequest(r *http.Request) string {
	if v, ok := r.Context().Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
