package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/delivery"
	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestIssueCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates identity and exactly one live code", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.codes.IssueCode(ctx, "a@b.com"))

		msg := f.outbox.last(t)
		require.Equal(t, "a@b.com", msg.To)
		require.Regexp(t, codePattern, msg.Code)
		require.WithinDuration(t, f.clock.Now().Add(10*time.Minute), msg.ExpiresAt, time.Millisecond)

		identity, err := f.store.Identities().GetIdentityByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		require.False(t, identity.IsAdmin)

		codes, err := f.store.Tokens().ListValidEmailCodes(ctx, identity.ID)
		require.NoError(t, err)
		require.Len(t, codes, 1)
		require.True(t, codes[0].Live(f.clock.Now()))
		require.NotEqual(t, msg.Code, codes[0].CodeHash, "only the fingerprint is stored")
	})

	t.Run("live code conflicts", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.codes.IssueCode(ctx, "a@b.com"))
		require.ErrorIs(t, f.codes.IssueCode(ctx, "a@b.com"), service.ErrCodePending)
		require.ErrorIs(t, f.codes.IssueCode(ctx, " A@B.com"), service.ErrCodePending)
		require.Equal(t, 1, f.outbox.count())

		identity, err := f.store.Identities().GetIdentityByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		codes, err := f.store.Tokens().ListValidEmailCodes(ctx, identity.ID)
		require.NoError(t, err)
		require.Len(t, codes, 1)
	})

	t.Run("expired code does not block a new one", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.codes.IssueCode(ctx, "a@b.com"))
		first := f.outbox.last(t).Code

		f.clock.Advance(11 * time.Minute)
		require.NoError(t, f.codes.IssueCode(ctx, "a@b.com"))
		require.Equal(t, 2, f.outbox.count())
		require.NotEqual(t, first, f.outbox.last(t).Code)
	})

	t.Run("consumed code does not block a new one", func(t *testing.T) {
		f := newFixture(t)

		f.login(t, "a@b.com")
		require.NoError(t, f.codes.IssueCode(ctx, "a@b.com"))
	})

	t.Run("empty address", func(t *testing.T) {
		f := newFixture(t)
		require.ErrorIs(t, f.codes.IssueCode(ctx, "   "), service.ErrValidation)
	})

	t.Run("delivery failure propagates and retracts the code", func(t *testing.T) {
		f := newFixture(t)
		f.outbox.fail = errors.New("smtp down")

		err := f.codes.IssueCode(ctx, "a@b.com")
		require.ErrorIs(t, err, service.ErrDelivery)
		require.ErrorContains(t, err, "smtp down")

		f.outbox.fail = nil
		require.NoError(t, f.codes.IssueCode(ctx, "a@b.com"))
	})

	t.Run("caller cancelling during delivery still retracts the code", func(t *testing.T) {
		f := newFixture(t)

		reqCtx, cancel := context.WithCancel(ctx)
		f.codes.Deliverer = delivery.DelivererFunc(func(ctx context.Context, _ delivery.Message) error {
			cancel()
			return ctx.Err()
		})

		err := f.codes.IssueCode(reqCtx, "a@b.com")
		require.ErrorIs(t, err, service.ErrDelivery)
		require.ErrorIs(t, err, context.Canceled)

		identity, err := f.store.Identities().GetIdentityByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		codes, err := f.store.Tokens().ListValidEmailCodes(ctx, identity.ID)
		require.NoError(t, err)
		require.Empty(t, codes)

		f.codes.Deliverer = f.outbox
		require.NoError(t, f.codes.IssueCode(ctx, "a@b.com"))
	})
}

func TestIssueCodeConcurrent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.codes.IssueCode(ctx, "race@b.com")
		}(i)
	}
	wg.Wait()

	var ok, pending int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, service.ErrCodePending):
			pending++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, n-1, pending)
	require.Equal(t, 1, f.outbox.count())
}
