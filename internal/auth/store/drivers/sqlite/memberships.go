package sqlite

import (
	"context"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/internal/auth/store/drivers/sqlite/gen"
)

type membershipsRepo struct {
	q *gen.Queries
}

func (r *membershipsRepo) ListAdministeredResourceIDs(ctx context.Context, identityID int64) ([]int64, error) {
	ids, err := r.q.ListAdministeredResourceIDs(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *membershipsRepo) ListIdentityMemberships(ctx context.Context, identityID int64) ([]domain.Membership, error) {
	rows, err := r.q.ListMembershipsByIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return mapMemberships(rows), nil
}

func (r *membershipsRepo) ListResourceMembers(ctx context.Context, resourceID int64) ([]domain.Membership, error) {
	rows, err := r.q.ListMembershipsByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return mapMemberships(rows), nil
}

func (r *membershipsRepo) UpsertMembership(ctx context.Context, m domain.Membership) error {
	err := r.q.UpsertMembership(ctx, gen.UpsertMembershipParams{
		IdentityID: m.IdentityID,
		ResourceID: m.ResourceID,
		Role:       string(m.Role),
	})
	return mapConstraint(err)
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, identityID, resourceID int64) error {
	n, err := r.q.DeleteMembership(ctx, gen.DeleteMembershipParams{
		IdentityID: identityID,
		ResourceID: resourceID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
