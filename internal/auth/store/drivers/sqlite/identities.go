package sqlite

import (
	"context"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/internal/auth/store/drivers/sqlite/gen"
)

type identitiesRepo struct {
	q *gen.Queries
}

func (r *identitiesRepo) FindOrCreateIdentityByAddress(ctx context.Context, email string) (domain.Identity, error) {
	// ON CONFLICT DO NOTHING makes a concurrent first login a no-op rather
	// than a unique violation; the read below then sees the winner's row.
	if err := r.q.InsertIdentityIfMissing(ctx, email); err != nil {
		return domain.Identity{}, err
	}
	return r.GetIdentityByEmail(ctx, email)
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id int64) (domain.Identity, error) {
	row, err := r.q.GetIdentityByID(ctx, id)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) SetIdentityAdmin(ctx context.Context, id int64, isAdmin bool) error {
	n, err := r.q.SetIdentityAdmin(ctx, gen.SetIdentityAdminParams{IsAdmin: isAdmin, ID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
