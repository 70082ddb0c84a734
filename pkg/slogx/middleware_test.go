package slogx_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/emailauth/pkg/idx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "test", Format: "json", Output: &buf})

	var sawLogger bool
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = slogx.FromContext(r.Context()) != logger
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("keeps a well formed request id", func(t *testing.T) {
		buf.Reset()
		id := idx.New().String()

		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		req.Header.Set(slogx.HeaderRequestID, id)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.True(t, sawLogger, "handler should get an enriched logger")
		require.Equal(t, id, rec.Header().Get(slogx.HeaderRequestID))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		require.Equal(t, "http_request", line["msg"])
		require.Equal(t, id, line["req_id"])
		require.EqualValues(t, http.StatusTeapot, line["status"])
	})

	t.Run("replaces a junk request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		req.Header.Set(slogx.HeaderRequestID, "evil\nid")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		got := rec.Header().Get(slogx.HeaderRequestID)
		require.NotEqual(t, "evil\nid", got)
		_, err := idx.Parse(got)
		require.NoError(t, err)
	})
}
