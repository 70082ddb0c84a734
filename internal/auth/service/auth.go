package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/pkg/jwtx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

// AuthService authenticates API token carriers. Every call re-reads the token,
// its owner and the owner's memberships, so revocations and role changes
// apply to the very next request.
type AuthService struct {
	Store    store.Store
	Verifier jwtx.Verifier
	Now      Clock
}

// Authenticate verifies a carrier and derives the caller's authorization
// context.
//
// Signature failures return ErrUnauthenticated before the store is touched.
// Unknown, revoked and non-API tokens return ErrInvalidToken; expired ones
// ErrTokenExpired. Store failures are logged and reported as
// ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, carrier string) (domain.AuthContext, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(carrier)
	if err != nil {
		l.Debug("carrier rejected", slogx.Tags("auth"), slog.Any("error", err))
		return domain.AuthContext{}, ErrUnauthenticated
	}

	cc, err := jwtx.ParseCarrierClaims(claims)
	if err != nil {
		l.Warn("signed carrier has unexpected claims", slogx.Tags("auth"), slog.Any("error", err))
		return domain.AuthContext{}, ErrUnauthenticated
	}

	token, err := s.Store.Tokens().GetTokenWithOwner(ctx, cc.TokenID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.AuthContext{}, ErrInvalidToken
	case err != nil:
		l.Error("token lookup failed", slogx.Tags("auth", "db"), slog.Any("error", err))
		return domain.AuthContext{}, ErrUnauthenticated
	}

	if !token.Valid || token.Kind != domain.TokenKindAPI {
		return domain.AuthContext{}, ErrInvalidToken
	}
	if token.Expired(s.Now.now()) {
		return domain.AuthContext{}, ErrTokenExpired
	}

	resourceIDs, err := s.Store.Memberships().ListAdministeredResourceIDs(ctx, token.IdentityID)
	if err != nil {
		l.Error("membership lookup failed", slogx.Tags("auth", "db"), slog.Any("error", err))
		return domain.AuthContext{}, ErrUnauthenticated
	}

	return domain.AuthContext{
		TokenID:                 token.ID,
		IdentityID:              token.IdentityID,
		IsAdmin:                 token.Owner.IsAdmin,
		AdministeredResourceIDs: resourceIDs,
	}, nil
}

// CarrierValidation is the outcome of ValidateCarrier.
type CarrierValidation struct {
	IsValid      bool
	Credentials  *domain.AuthContext
	ErrorMessage string
}

// ValidateCarrier is Authenticate folded into a result value, which is the
// shape transport adapters consume. The message is safe to show to clients.
func (s *AuthService) ValidateCarrier(ctx context.Context, carrier string) CarrierValidation {
	ac, err := s.Authenticate(ctx, carrier)
	switch {
	case err == nil:
		return CarrierValidation{IsValid: true, Credentials: &ac}
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
		return CarrierValidation{ErrorMessage: err.Error()}
	default:
		return CarrierValidation{ErrorMessage: ErrUnauthenticated.Error()}
	}
}

// Logout revokes the token the caller authenticated with.
func (s *AuthService) Logout(ctx context.Context, ac domain.AuthContext) error {
	revoked, err := s.Store.Tokens().InvalidateToken(ctx, ac.TokenID)
	if err != nil {
		return err
	}
	if !revoked {
		return ErrInvalidToken
	}
	slogx.FromContext(ctx).Info("api token revoked", slog.Int64("token_id", ac.TokenID))
	return nil
}
