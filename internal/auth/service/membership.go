package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

// MembershipService manages the identity to resource links that grant
// per-resource administration.
type MembershipService struct {
	Store store.Store
}

// ListResourceMembers lists the memberships of a resource by identity id.
func (s *MembershipService) ListResourceMembers(ctx context.Context, resourceID int64) ([]domain.Membership, error) {
	return s.Store.Memberships().ListResourceMembers(ctx, resourceID)
}

// ListIdentityMemberships lists the memberships of the identity with the
// given address.
func (s *MembershipService) ListIdentityMemberships(ctx context.Context, email string) ([]domain.Membership, error) {
	identity, err := s.Store.Identities().GetIdentityByEmail(ctx, domain.NormalizeAddress(email))
	if err != nil {
		return nil, mapStoreNotFound(err)
	}
	return s.Store.Memberships().ListIdentityMemberships(ctx, identity.ID)
}

// AddMembership grants role on resourceID, replacing any existing role.
func (s *MembershipService) AddMembership(ctx context.Context, email string, resourceID int64, role domain.MembershipRole) error {
	if _, ok := domain.ParseMembershipRole(string(role)); !ok || resourceID <= 0 {
		return ErrValidation
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		identity, err := tx.Identities().GetIdentityByEmail(ctx, domain.NormalizeAddress(email))
		if err != nil {
			return mapStoreNotFound(err)
		}
		return tx.Memberships().UpsertMembership(ctx, domain.Membership{
			IdentityID: identity.ID,
			ResourceID: resourceID,
			Role:       role,
		})
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("membership granted",
		slog.String("email", domain.NormalizeAddress(email)),
		slog.Int64("resource_id", resourceID),
		slog.String("role", string(role)),
	)
	return nil
}

// RemoveMembership drops the identity's membership of resourceID.
func (s *MembershipService) RemoveMembership(ctx context.Context, email string, resourceID int64) error {
	identity, err := s.Store.Identities().GetIdentityByEmail(ctx, domain.NormalizeAddress(email))
	if err != nil {
		return mapStoreNotFound(err)
	}
	return mapStoreNotFound(s.Store.Memberships().DeleteMembership(ctx, identity.ID, resourceID))
}
