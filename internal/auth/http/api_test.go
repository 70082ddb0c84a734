package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/delivery"
	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	authhttp "github.com/aussiebroadwan/emailauth/internal/auth/http"
	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/aussiebroadwan/emailauth/pkg/httpx"
	"github.com/aussiebroadwan/emailauth/pkg/jwtx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Every test talks from 127.0.0.1; keep the IP limits out of the way.
	relaxed := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed
	httpx.LenientLimit = relaxed

	os.Exit(m.Run())
}

type inbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (b *inbox) DeliverCode(_ context.Context, msg delivery.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.codes[msg.To] = msg.Code
	return nil
}

func (b *inbox) code(t *testing.T, address string) string {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	code, ok := b.codes[address]
	require.True(t, ok, "no code delivered to %s", address)
	return code
}

type testServer struct {
	client     *authsdk.SDKClient
	url        string
	inbox      *inbox
	store      *sqlite.Store
	identities *service.IdentityService
	members    *service.MembershipService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	ring, err := jwtx.NewSecretRing([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	box := &inbox{codes: map[string]string{}}

	router := authhttp.NewRouter(ring, "test", st, slogx.Discard())
	router.CodeService = &service.CodeService{Store: st, Deliverer: box}
	router.TokenService = &service.TokenService{Store: st, Signer: jwtx.NewSignerHS256(ring)}
	router.AuthService = &service.AuthService{Store: st, Verifier: jwtx.NewVerifierHS256(ring)}
	router.IdentityService = &service.IdentityService{Store: st}
	router.MembershipService = &service.MembershipService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		client:     authsdk.NewSDKClient(srv.URL),
		url:        srv.URL,
		inbox:      box,
		store:      st,
		identities: router.IdentityService,
		members:    router.MembershipService,
	}
}

func (s *testServer) login(t *testing.T, address string) *authsdk.Session {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.client.RequestCode(ctx, address))
	session, err := s.client.Exchange(ctx, address, s.inbox.code(t, address))
	require.NoError(t, err)
	return session
}

func (s *testServer) do(t *testing.T, method, path, body string, header map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, s.url+path, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ctx := context.Background()

	session := s.login(t, "a@b.com")
	require.NotEmpty(t, session.Carrier())
	require.WithinDuration(t, time.Now().Add(12*time.Hour), session.ExpiresAt(), time.Minute)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.NotZero(t, me.IdentityID)
	require.NotZero(t, me.TokenID)
	require.False(t, me.IsAdmin)
	require.Equal(t, []int64{}, me.AdministeredResourceIDs)

	user, err := session.GetUser(ctx, me.IdentityID)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)

	carrier := session.Carrier()
	require.NoError(t, session.Logout(ctx))
	_, err = session.Me(ctx)
	require.ErrorIs(t, err, authsdk.ErrLoggedOut)

	stale := s.client.NewSession(carrier, time.Time{})
	_, err = stale.Me(ctx)
	require.ErrorIs(t, err, authsdk.ErrInvalidToken)
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	t.Run("created", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/v1/login", `{"email":"new@b.com"}`, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		require.Regexp(t, `^[0-9]{8}$`, s.inbox.code(t, "new@b.com"))
	})

	t.Run("pending code conflicts", func(t *testing.T) {
		require.NoError(t, s.client.RequestCode(context.Background(), "pending@b.com"))

		err := s.client.RequestCode(context.Background(), "pending@b.com")
		require.ErrorIs(t, err, authsdk.ErrCodePending)
	})

	t.Run("validation", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/v1/login", `{"email":"nope"}`, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body authsdk.ValidationErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, authsdk.ErrorCodeValidation, body.Code)
		require.Contains(t, body.Details, "email")
	})

	t.Run("malformed body", func(t *testing.T) {
		for _, body := range []string{`{`, `{"email":"a@b.com","admin":true}`, ``} {
			resp := s.do(t, http.MethodPost, "/v1/login", body, nil)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/v1/login", "", nil)
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestAuthenticateEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, s.client.RequestCode(ctx, "a@b.com"))
	code := s.inbox.code(t, "a@b.com")

	t.Run("wrong address", func(t *testing.T) {
		_, err := s.client.Exchange(ctx, "c@d.com", code)
		require.ErrorIs(t, err, authsdk.ErrInvalidGrant)
	})

	t.Run("unknown code", func(t *testing.T) {
		if code == "00000000" {
			t.Skip("collided with the issued code")
		}
		_, err := s.client.Exchange(ctx, "a@b.com", "00000000")
		require.ErrorIs(t, err, authsdk.ErrInvalidGrant)
	})

	t.Run("validation", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/v1/authenticate", `{"email":"a@b.com","emailToken":"12ab"}`, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("success sets the authorization header", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/v1/authenticate",
			`{"email":"a@b.com","emailToken":"`+code+`"}`, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotEmpty(t, resp.Header.Get("Authorization"))
		require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

		var body authsdk.AuthenticateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "Bearer", body.TokenType)
		require.Equal(t, 12*3600, body.ExpiresIn)
	})

	t.Run("replay", func(t *testing.T) {
		_, err := s.client.Exchange(ctx, "a@b.com", code)
		require.ErrorIs(t, err, authsdk.ErrInvalidGrant)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ctx := context.Background()
	session := s.login(t, "a@b.com")

	tests := []struct {
		name   string
		header map[string]string
		desc   string
	}{
		{name: "missing", header: nil, desc: "unauthenticated"},
		{name: "garbage", header: map[string]string{"Authorization": "Bearer nope"}, desc: "unauthenticated"},
		{name: "bare carrier accepted", header: map[string]string{"Authorization": session.Carrier()}},
		{name: "bearer carrier accepted", header: map[string]string{"Authorization": "Bearer " + session.Carrier()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, http.MethodGet, "/v1/me", "", tt.header)
			if tt.desc == "" {
				require.Equal(t, http.StatusOK, resp.StatusCode)
				return
			}
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			require.Contains(t, resp.Header.Get("WWW-Authenticate"), `error="invalid_token"`)

			var body authsdk.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.desc, body.ErrorDescription)
		})
	}

	t.Run("revoked out of band", func(t *testing.T) {
		me, err := session.Me(ctx)
		require.NoError(t, err)
		require.NoError(t, s.identities.RevokeToken(ctx, me.TokenID))

		_, err = session.Me(ctx)
		require.ErrorIs(t, err, authsdk.ErrInvalidToken)
	})
}

func TestGuards(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ctx := context.Background()

	alice := s.login(t, "alice@b.com")
	bob := s.login(t, "bob@b.com")
	root := s.login(t, "root@b.com")

	_, err := s.identities.SetAdmin(ctx, "root@b.com", true)
	require.NoError(t, err)
	require.NoError(t, s.members.AddMembership(ctx, "alice@b.com", 3, domain.RoleAdministrator))
	require.NoError(t, s.members.AddMembership(ctx, "bob@b.com", 3, domain.RoleMember))

	aliceMe, err := alice.Me(ctx)
	require.NoError(t, err)
	bobMe, err := bob.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{3}, aliceMe.AdministeredResourceIDs)

	t.Run("self or admin", func(t *testing.T) {
		_, err := alice.GetUser(ctx, aliceMe.IdentityID)
		require.NoError(t, err)

		_, err = alice.GetUser(ctx, bobMe.IdentityID)
		require.ErrorIs(t, err, authsdk.ErrAccessDenied)

		user, err := root.GetUser(ctx, bobMe.IdentityID)
		require.NoError(t, err)
		require.Equal(t, "bob@b.com", user.Email)

		_, err = root.GetUser(ctx, 999)
		require.ErrorIs(t, err, authsdk.ErrNotFound)
	})

	t.Run("administers or admin", func(t *testing.T) {
		members, err := alice.ResourceMembers(ctx, 3)
		require.NoError(t, err)
		require.Len(t, members.Members, 2)

		_, err = bob.ResourceMembers(ctx, 3)
		require.ErrorIs(t, err, authsdk.ErrAccessDenied)

		_, err = alice.ResourceMembers(ctx, 4)
		require.ErrorIs(t, err, authsdk.ErrAccessDenied)

		members, err = root.ResourceMembers(ctx, 4)
		require.NoError(t, err)
		require.Empty(t, members.Members)
	})

	t.Run("non numeric id", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/v1/users/abc", "", map[string]string{"Authorization": root.Carrier()})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var vErr *authsdk.ValidationError
		_, err := root.GetUser(ctx, -1)
		require.True(t, errors.As(err, &vErr))
		require.Contains(t, vErr.Details, "userId")
	})
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ctx := context.Background()

	status, err := s.client.GetStatus(ctx)
	require.NoError(t, err)
	require.True(t, status.Up)

	live, err := s.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)

	resp := s.do(t, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
