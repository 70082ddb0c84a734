package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/delivery"
	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/pkg/cryptox"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

const (
	// DefaultCodeTTL is how long an emailed code stays usable.
	DefaultCodeTTL = 10 * time.Minute

	// maxCodeAttempts bounds regeneration when a fresh code collides with a
	// code that is still stored.
	maxCodeAttempts = 3
)

// CodeService issues one-time email codes.
type CodeService struct {
	Store     store.Store
	Deliverer delivery.Deliverer
	CodeTTL   time.Duration
	Now       Clock
}

// IssueCode creates a code for the address and delivers it. The identity is
// created on first use. It fails with ErrCodePending while an earlier code
// for the same identity is still live.
//
// The live-code check and the insert run in one write transaction, so two
// concurrent requests for the same address cannot both create a code.
func (s *CodeService) IssueCode(ctx context.Context, address string) error {
	address = domain.NormalizeAddress(address)
	if address == "" {
		return ErrValidation
	}

	l := slogx.FromContext(ctx)
	now := s.Now.now()
	ttl := s.CodeTTL
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}

	var (
		code   string
		issued domain.Token
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		identity, err := tx.Identities().FindOrCreateIdentityByAddress(ctx, address)
		if err != nil {
			return err
		}

		pending, err := tx.Tokens().ListValidEmailCodes(ctx, identity.ID)
		if err != nil {
			return err
		}
		for _, t := range pending {
			if t.Live(now) {
				return ErrCodePending
			}
		}

		for range maxCodeAttempts {
			code, err = cryptox.GenerateNumericCode(cryptox.EmailCodeDigits)
			if err != nil {
				return err
			}

			issued, err = tx.Tokens().CreateToken(ctx, domain.Token{
				IdentityID: identity.ID,
				Kind:       domain.TokenKindEmail,
				CodeHash:   cryptox.FingerprintToken(code),
				ExpiresAt:  now.Add(ttl),
				Valid:      true,
			})
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return err
		}
		return fmt.Errorf("no unused code after %d attempts", maxCodeAttempts)
	})
	if err != nil {
		return err
	}

	err = s.Deliverer.DeliverCode(ctx, delivery.Message{
		To:        address,
		Code:      code,
		ExpiresAt: issued.ExpiresAt,
	})
	if err != nil {
		// Retract the code so the address can ask again right away. The
		// caller may have gone away, which is often why delivery failed.
		if _, rerr := s.Store.Tokens().InvalidateToken(context.WithoutCancel(ctx), issued.ID); rerr != nil {
			l.Error("failed to retract undelivered code",
				slogx.Tags("auth", "db"),
				slog.Int64("token_id", issued.ID),
				slog.Any("error", rerr),
			)
		}
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	l.Info("email code issued", slog.Int64("identity_id", issued.IdentityID), slog.Int64("token_id", issued.ID))
	return nil
}
