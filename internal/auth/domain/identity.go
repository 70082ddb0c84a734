package domain

import (
	"strings"
	"time"
)

// Identity is a principal keyed by its email address. Identities are created
// lazily the first time a code is requested for an address.
type Identity struct {
	ID        int64
	Email     string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeAddress canonicalises an email address before it is used as a
// lookup key, so "Alice@Example.com " and "alice@example.com" are one identity.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
