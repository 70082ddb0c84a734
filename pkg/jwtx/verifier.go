package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks a carrier's signature and structure and hands back the raw
// payload. It does not judge the payload's shape; see ParseCarrierClaims.
type Verifier interface {
	Verify(token string) (jwt.MapClaims, error)
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrUnknownKID   = errors.New("jwtx: unknown kid")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier validates carriers against a SecretRing.
type HS256Verifier struct {
	ring   *SecretRing
	parser *jwt.Parser
}

func NewVerifierHS256(ring *SecretRing) *HS256Verifier {
	return &HS256Verifier{
		ring: ring,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithJSONNumber(),
		),
	}
}

func (v *HS256Verifier) Verify(tokenStr string) (jwt.MapClaims, error) {
	if tokenStr == "" {
		return nil, ErrMalformed
	}

	token, err := v.parser.Parse(tokenStr, v.keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		case errors.Is(err, ErrUnknownKID):
			return nil, err
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSig
		default:
			return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}
	return claims, nil
}

func (v *HS256Verifier) keyFunc(t *jwt.Token) (any, error) {
	// A kid pins the secret; without one every secret in the ring is tried.
	if kid, _ := t.Header["kid"].(string); kid != "" {
		secret, err := v.ring.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}
		return secret, nil
	}

	set := jwt.VerificationKeySet{}
	for _, s := range v.ring.All() {
		set.Keys = append(set.Keys, s)
	}
	return set, nil
}
