package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/internal/auth/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc connection string for a database file. Every
// transaction begins IMMEDIATE so the write lock is taken up front, which
// serializes check-then-insert sequences such as code issuance. Times are
// stored in a layout SQLite's date functions can parse.
func DSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)&_txlock=immediate&_time_format=sqlite"
	}
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate&_time_format=sqlite",
		path,
	)
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Each connection to :memory: is its own database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback after a successful commit is a no-op returning ErrTxDone.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Identities() store.Identities   { return &identitiesRepo{q: s.q} }
func (s *Store) Tokens() store.Tokens           { return &tokensRepo{q: s.q} }
func (s *Store) Memberships() store.Memberships { return &membershipsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique/primary key violations into store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", store.ErrAlreadyExists, se.Error())
		}
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapIdentity(row gen.Identity) domain.Identity {
	return domain.Identity{
		ID:        row.ID,
		Email:     row.Email,
		IsAdmin:   row.IsAdmin,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapToken(row gen.Token) domain.Token {
	return domain.Token{
		ID:         row.ID,
		IdentityID: row.IdentityID,
		Kind:       domain.TokenKind(row.Kind),
		CodeHash:   mapNullString(row.CodeHash),
		ExpiresAt:  row.ExpiresAt.UTC(),
		Valid:      row.Valid,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func mapTokens(rows []gen.Token) []domain.Token {
	out := make([]domain.Token, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToken(row))
	}
	return out
}

// mapTokenWithOwner covers both join rows, which sqlc emits as distinct
// structs with identical fields.
func mapTokenWithOwner(row gen.GetTokenWithOwnerRow) domain.TokenWithOwner {
	return domain.TokenWithOwner{
		Token: domain.Token{
			ID:         row.ID,
			IdentityID: row.IdentityID,
			Kind:       domain.TokenKind(row.Kind),
			CodeHash:   mapNullString(row.CodeHash),
			ExpiresAt:  row.ExpiresAt.UTC(),
			Valid:      row.Valid,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		},
		Owner: domain.Identity{
			ID:        row.IdentityID,
			Email:     row.Email,
			IsAdmin:   row.IsAdmin,
			CreatedAt: row.IdentityCreatedAt,
			UpdatedAt: row.IdentityUpdatedAt,
		},
	}
}

func mapMembership(row gen.Membership) domain.Membership {
	return domain.Membership{
		IdentityID: row.IdentityID,
		ResourceID: row.ResourceID,
		Role:       domain.MembershipRole(row.Role),
		CreatedAt:  row.CreatedAt,
	}
}

func mapMemberships(rows []gen.Membership) []domain.Membership {
	out := make([]domain.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMembership(row))
	}
	return out
}
