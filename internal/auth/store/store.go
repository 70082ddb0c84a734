package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories so a transaction can hand out
// the same repos bound to the open transaction, and nothing else.
type Store interface {
	Identities() Identities
	Tokens() Tokens
	Memberships() Memberships

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Repositories must
	// be reached through the tx argument, never the outer Store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	// FindOrCreateIdentityByAddress returns the identity for the address,
	// creating it when none exists. Safe against concurrent first logins.
	FindOrCreateIdentityByAddress(ctx context.Context, email string) (domain.Identity, error)

	GetIdentityByID(ctx context.Context, id int64) (domain.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// SetIdentityAdmin flips the global admin flag. Returns ErrNotFound when
	// the identity does not exist.
	SetIdentityAdmin(ctx context.Context, id int64, isAdmin bool) error
}

type Tokens interface {
	// CreateToken inserts a token row and returns it with its assigned id.
	// A colliding code hash yields ErrAlreadyExists.
	CreateToken(ctx context.Context, t domain.Token) (domain.Token, error)

	// ListValidEmailCodes returns the EMAIL tokens of an identity whose
	// validity flag is still set, expired or not, newest first.
	ListValidEmailCodes(ctx context.Context, identityID int64) ([]domain.Token, error)

	// GetEmailCodeByHash looks up an EMAIL token by code fingerprint,
	// including its owner.
	GetEmailCodeByHash(ctx context.Context, codeHash string) (domain.TokenWithOwner, error)

	// GetTokenWithOwner looks up any token by id, including its owner.
	GetTokenWithOwner(ctx context.Context, id int64) (domain.TokenWithOwner, error)

	// InvalidateToken clears the validity flag. It reports false when the
	// token was already invalid (or missing), so a racing caller can tell it lost.
	InvalidateToken(ctx context.Context, id int64) (bool, error)

	// RevokeIdentityAPITokens invalidates every live API token of an identity.
	RevokeIdentityAPITokens(ctx context.Context, identityID int64) (int64, error)

	ListIdentityTokens(ctx context.Context, identityID int64, kind domain.TokenKind) ([]domain.Token, error)

	// ReleaseSpentEmailCodes clears the code hash of EMAIL tokens that were
	// consumed or expired before the cutoff. Rows are kept.
	ReleaseSpentEmailCodes(ctx context.Context, expiredBefore time.Time) (int64, error)
}

type Memberships interface {
	// ListAdministeredResourceIDs projects the identity's ADMINISTRATOR
	// memberships to resource ids, ascending.
	ListAdministeredResourceIDs(ctx context.Context, identityID int64) ([]int64, error)

	ListIdentityMemberships(ctx context.Context, identityID int64) ([]domain.Membership, error)
	ListResourceMembers(ctx context.Context, resourceID int64) ([]domain.Membership, error)

	// UpsertMembership creates the membership or replaces its role.
	UpsertMembership(ctx context.Context, m domain.Membership) error

	// DeleteMembership returns ErrNotFound when there was nothing to delete.
	DeleteMembership(ctx context.Context, identityID, resourceID int64) error
}
