package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// Signer mints carriers for bearer tokens.
type Signer interface {
	Alg() string
	Sign(tokenID int64) (string, error)
}

// HS256Signer signs carriers with the ring's current secret.
type HS256Signer struct {
	ring *SecretRing
}

func NewSignerHS256(ring *SecretRing) *HS256Signer {
	return &HS256Signer{ring: ring}
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign produces a compact JWS whose payload is exactly {"tokenId": id}. No
// timestamps are embedded; expiry lives in the database row.
func (s *HS256Signer) Sign(tokenID int64) (string, error) {
	kid, secret := s.ring.Current()
	if len(secret) == 0 {
		return "", ErrNoKey
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		ClaimTokenID: tokenID,
	})
	t.Header["kid"] = kid
	return t.SignedString(secret)
}
