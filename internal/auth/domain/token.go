package domain

import "time"

// TokenKind discriminates the two lifecycles that share the tokens table.
type TokenKind string

const (
	// TokenKindEmail is a short-lived single-use verification code.
	TokenKindEmail TokenKind = "EMAIL"

	// TokenKindAPI is a long-lived bearer token minted by a code exchange.
	TokenKindAPI TokenKind = "API"
)

// Token models a row of the tokens table. For EMAIL tokens CodeHash holds the
// fingerprint of the delivered code until housekeeping releases it. API tokens
// never carry a code.
type Token struct {
	ID         int64
	IdentityID int64
	Kind       TokenKind
	CodeHash   string // base64url SHA-256 of the code, empty once released
	ExpiresAt  time.Time
	Valid      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired reports whether the token is past its expiry at now. Validity is
// tracked separately and is not considered here.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Live reports whether the token is both valid and unexpired.
func (t Token) Live(now time.Time) bool {
	return t.Valid && !t.Expired(now)
}

// TokenWithOwner is a token joined with the identity that owns it, which is
// what both the code exchange and request authentication need in one read.
type TokenWithOwner struct {
	Token
	Owner Identity
}

// IssuedToken is what a successful code exchange hands back: the persisted
// bearer token plus the signed carrier that references it.
type IssuedToken struct {
	TokenID   int64
	Carrier   string
	ExpiresAt time.Time
	TTL       time.Duration
}
