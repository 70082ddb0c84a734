package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

// IdentityService reads identities and manages their admin flag and tokens.
type IdentityService struct {
	Store store.Store
}

// GetIdentity fetches an identity by id.
func (s *IdentityService) GetIdentity(ctx context.Context, id int64) (domain.Identity, error) {
	identity, err := s.Store.Identities().GetIdentityByID(ctx, id)
	return identity, mapStoreNotFound(err)
}

// GetIdentityByEmail fetches an identity by address.
func (s *IdentityService) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	identity, err := s.Store.Identities().GetIdentityByEmail(ctx, domain.NormalizeAddress(email))
	return identity, mapStoreNotFound(err)
}

// SetAdmin sets the global admin flag. The change applies to the identity's
// next authenticated request.
func (s *IdentityService) SetAdmin(ctx context.Context, email string, isAdmin bool) (domain.Identity, error) {
	var identity domain.Identity
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		identity, err = tx.Identities().GetIdentityByEmail(ctx, domain.NormalizeAddress(email))
		if err != nil {
			return mapStoreNotFound(err)
		}
		if err := tx.Identities().SetIdentityAdmin(ctx, identity.ID, isAdmin); err != nil {
			return mapStoreNotFound(err)
		}
		identity.IsAdmin = isAdmin
		return nil
	})
	if err != nil {
		return domain.Identity{}, err
	}

	slogx.FromContext(ctx).Info("admin flag changed",
		slog.Int64("identity_id", identity.ID),
		slog.Bool("is_admin", isAdmin),
	)
	return identity, nil
}

// ListAPITokens lists every API token of the identity, newest first.
func (s *IdentityService) ListAPITokens(ctx context.Context, email string) ([]domain.Token, error) {
	identity, err := s.GetIdentityByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.Store.Tokens().ListIdentityTokens(ctx, identity.ID, domain.TokenKindAPI)
}

// RevokeToken invalidates a single API token. Revoking an unknown or already
// revoked token returns ErrNotFound.
func (s *IdentityService) RevokeToken(ctx context.Context, tokenID int64) error {
	token, err := s.Store.Tokens().GetTokenWithOwner(ctx, tokenID)
	if err != nil {
		return mapStoreNotFound(err)
	}
	if token.Kind != domain.TokenKindAPI {
		return ErrNotFound
	}

	revoked, err := s.Store.Tokens().InvalidateToken(ctx, tokenID)
	if err != nil {
		return err
	}
	if !revoked {
		return ErrNotFound
	}

	slogx.FromContext(ctx).Info("api token revoked", slog.Int64("token_id", tokenID))
	return nil
}

// RevokeAllTokens invalidates every live API token of the identity and
// returns how many were revoked.
func (s *IdentityService) RevokeAllTokens(ctx context.Context, email string) (int64, error) {
	identity, err := s.GetIdentityByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	n, err := s.Store.Tokens().RevokeIdentityAPITokens(ctx, identity.ID)
	if err != nil {
		return 0, err
	}

	slogx.FromContext(ctx).Info("api tokens revoked",
		slog.Int64("identity_id", identity.ID),
		slog.Int64("count", n),
	)
	return n, nil
}

func mapStoreNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
