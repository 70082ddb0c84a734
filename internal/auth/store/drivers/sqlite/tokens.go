package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/internal/auth/store/drivers/sqlite/gen"
)

type tokensRepo struct {
	q *gen.Queries
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.Token) (domain.Token, error) {
	id, err := r.q.CreateToken(ctx, gen.CreateTokenParams{
		IdentityID: t.IdentityID,
		Kind:       string(t.Kind),
		CodeHash:   mapStringNull(t.CodeHash),
		ExpiresAt:  t.ExpiresAt.UTC(),
	})
	if err != nil {
		return domain.Token{}, mapConstraint(err)
	}

	row, err := r.q.GetTokenWithOwner(ctx, id)
	if err != nil {
		return domain.Token{}, mapNotFound(err)
	}
	return mapTokenWithOwner(row).Token, nil
}

func (r *tokensRepo) ListValidEmailCodes(ctx context.Context, identityID int64) ([]domain.Token, error) {
	rows, err := r.q.ListValidEmailCodes(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return mapTokens(rows), nil
}

func (r *tokensRepo) GetEmailCodeByHash(ctx context.Context, codeHash string) (domain.TokenWithOwner, error) {
	if codeHash == "" {
		return domain.TokenWithOwner{}, store.ErrNotFound
	}
	row, err := r.q.GetEmailCodeByHash(ctx, mapStringNull(codeHash))
	if err != nil {
		return domain.TokenWithOwner{}, mapNotFound(err)
	}
	return mapTokenWithOwner(gen.GetTokenWithOwnerRow(row)), nil
}

func (r *tokensRepo) GetTokenWithOwner(ctx context.Context, id int64) (domain.TokenWithOwner, error) {
	row, err := r.q.GetTokenWithOwner(ctx, id)
	if err != nil {
		return domain.TokenWithOwner{}, mapNotFound(err)
	}
	return mapTokenWithOwner(row), nil
}

func (r *tokensRepo) InvalidateToken(ctx context.Context, id int64) (bool, error) {
	n, err := r.q.InvalidateToken(ctx, id)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *tokensRepo) RevokeIdentityAPITokens(ctx context.Context, identityID int64) (int64, error) {
	return r.q.RevokeIdentityAPITokens(ctx, identityID)
}

func (r *tokensRepo) ListIdentityTokens(
	ctx context.Context,
	identityID int64,
	kind domain.TokenKind,
) ([]domain.Token, error) {
	rows, err := r.q.ListIdentityTokens(ctx, gen.ListIdentityTokensParams{
		IdentityID: identityID,
		Kind:       string(kind),
	})
	if err != nil {
		return nil, err
	}
	return mapTokens(rows), nil
}

func (r *tokensRepo) ReleaseSpentEmailCodes(ctx context.Context, expiredBefore time.Time) (int64, error) {
	return r.q.ReleaseSpentEmailCodes(ctx, expiredBefore.UTC())
}
