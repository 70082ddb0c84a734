package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/pkg/cryptox"
	"github.com/aussiebroadwan/emailauth/pkg/jwtx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

// DefaultAPITokenTTL is the lifetime of a token minted by a code exchange.
const DefaultAPITokenTTL = 12 * time.Hour

// TokenService exchanges email codes for API tokens.
type TokenService struct {
	Store       store.Store
	Signer      jwtx.Signer
	APITokenTTL time.Duration
	Now         Clock
}

// ExchangeCode consumes a code issued to address and mints an API token.
//
// Checks run in a fixed order: the code must exist, still be valid, be
// unexpired and belong to address. Everything except expiry fails with the
// same ErrUnauthorized. Consuming the code, minting the token and signing the
// carrier share one transaction, so a failure at any step leaves the code
// usable and no orphan token behind.
func (s *TokenService) ExchangeCode(ctx context.Context, address, code string) (domain.IssuedToken, error) {
	l := slogx.FromContext(ctx)
	now := s.Now.now()
	ttl := s.APITokenTTL
	if ttl <= 0 {
		ttl = DefaultAPITokenTTL
	}

	address = domain.NormalizeAddress(address)
	code = strings.TrimSpace(code)
	if address == "" || code == "" {
		return domain.IssuedToken{}, ErrUnauthorized
	}

	reject := func(reason string, err error) error {
		l.Info("code exchange rejected", slogx.Tags("auth"), slog.String("reason", reason))
		return err
	}

	var issued domain.IssuedToken
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		emailCode, err := tx.Tokens().GetEmailCodeByHash(ctx, cryptox.FingerprintToken(code))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return reject("unknown code", ErrUnauthorized)
			}
			return err
		}

		if !emailCode.Valid {
			return reject("consumed code", ErrUnauthorized)
		}
		if emailCode.Expired(now) {
			return reject("expired code", ErrCodeExpired)
		}
		if emailCode.Owner.Email != address {
			return reject("address mismatch", ErrUnauthorized)
		}

		// Conditional update: of two racing exchanges only one flips the flag.
		consumed, err := tx.Tokens().InvalidateToken(ctx, emailCode.ID)
		if err != nil {
			return err
		}
		if !consumed {
			return reject("consumed code", ErrUnauthorized)
		}

		apiToken, err := tx.Tokens().CreateToken(ctx, domain.Token{
			IdentityID: emailCode.IdentityID,
			Kind:       domain.TokenKindAPI,
			ExpiresAt:  now.Add(ttl),
			Valid:      true,
		})
		if err != nil {
			return err
		}

		carrier, err := s.Signer.Sign(apiToken.ID)
		if err != nil {
			return err
		}

		issued = domain.IssuedToken{
			TokenID:   apiToken.ID,
			Carrier:   carrier,
			ExpiresAt: apiToken.ExpiresAt,
			TTL:       ttl,
		}
		return nil
	})
	if err != nil {
		return domain.IssuedToken{}, err
	}

	l.Info("api token issued", slog.Int64("token_id", issued.TokenID))
	return issued, nil
}
