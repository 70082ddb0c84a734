package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/delivery"
	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/emailauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var (
	testSecret  = []byte("0123456789abcdef0123456789abcdef")
	codePattern = regexp.MustCompile(`^[0-9]{8}$`)
)

// fakeClock is a settable time source shared by all services of a fixture.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// outbox captures delivered codes.
type outbox struct {
	mu   sync.Mutex
	msgs []delivery.Message
	fail error
}

func (o *outbox) DeliverCode(_ context.Context, msg delivery.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail != nil {
		return o.fail
	}
	o.msgs = append(o.msgs, msg)
	return nil
}

func (o *outbox) last(t *testing.T) delivery.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.msgs, "no code was delivered")
	return o.msgs[len(o.msgs)-1]
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.msgs)
}

// countingStore counts every repository and transaction access.
type countingStore struct {
	store.Store
	calls atomic.Int64
}

func (c *countingStore) Identities() store.Identities {
	c.calls.Add(1)
	return c.Store.Identities()
}

func (c *countingStore) Tokens() store.Tokens {
	c.calls.Add(1)
	return c.Store.Tokens()
}

func (c *countingStore) Memberships() store.Memberships {
	c.calls.Add(1)
	return c.Store.Memberships()
}

func (c *countingStore) Tx(ctx context.Context) (store.Tx, error) {
	c.calls.Add(1)
	return c.Store.Tx(ctx)
}

func (c *countingStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	c.calls.Add(1)
	return c.Store.WithTx(ctx, fn)
}

// lookupFailingStore fails every token lookup by id.
type lookupFailingStore struct {
	store.Store
}

func (s lookupFailingStore) Tokens() store.Tokens {
	return lookupFailingTokens{s.Store.Tokens()}
}

type lookupFailingTokens struct {
	store.Tokens
}

func (lookupFailingTokens) GetTokenWithOwner(context.Context, int64) (domain.TokenWithOwner, error) {
	return domain.TokenWithOwner{}, errors.New("disk I/O error")
}

type failingSigner struct{}

func (failingSigner) Alg() string { return "HS256" }

func (failingSigner) Sign(int64) (string, error) { return "", errors.New("signer offline") }

type fixture struct {
	store      *sqlite.Store
	counting   *countingStore
	clock      *fakeClock
	outbox     *outbox
	ring       *jwtx.SecretRing
	codes      *service.CodeService
	tokens     *service.TokenService
	auth       *service.AuthService
	identities *service.IdentityService
	members    *service.MembershipService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	ring, err := jwtx.NewSecretRing(testSecret)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	box := &outbox{}
	counting := &countingStore{Store: st}

	return &fixture{
		store:    st,
		counting: counting,
		clock:    clock,
		outbox:   box,
		ring:     ring,
		codes: &service.CodeService{
			Store:     st,
			Deliverer: box,
			CodeTTL:   service.DefaultCodeTTL,
			Now:       clock.Now,
		},
		tokens: &service.TokenService{
			Store:       st,
			Signer:      jwtx.NewSignerHS256(ring),
			APITokenTTL: service.DefaultAPITokenTTL,
			Now:         clock.Now,
		},
		auth: &service.AuthService{
			Store:    counting,
			Verifier: jwtx.NewVerifierHS256(ring),
			Now:      clock.Now,
		},
		identities: &service.IdentityService{Store: st},
		members:    &service.MembershipService{Store: st},
	}
}

// login issues and exchanges a code for address and returns the carrier.
func (f *fixture) login(t *testing.T, address string) string {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.codes.IssueCode(ctx, address))
	issued, err := f.tokens.ExchangeCode(ctx, address, f.outbox.last(t).Code)
	require.NoError(t, err)
	return issued.Carrier
}
