package jwtx

import (
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimTokenID is the only key a carrier payload may hold.
const ClaimTokenID = "tokenId"

// CarrierClaims is the validated payload of a carrier.
type CarrierClaims struct {
	TokenID int64
}

// ParseCarrierClaims enforces the carrier payload schema: a single required
// positive integer "tokenId" and nothing else. Claims must have been decoded
// with json.Number (the HS256Verifier does this).
func ParseCarrierClaims(claims jwt.MapClaims) (CarrierClaims, error) {
	raw, ok := claims[ClaimTokenID]
	if !ok {
		return CarrierClaims{}, fmt.Errorf("%w: %s is required", ErrInvalidClaim, ClaimTokenID)
	}
	if len(claims) != 1 {
		return CarrierClaims{}, fmt.Errorf("%w: unexpected claims", ErrInvalidClaim)
	}

	var id int64
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return CarrierClaims{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidClaim, ClaimTokenID)
		}
		id = n
	case float64:
		if v != float64(int64(v)) {
			return CarrierClaims{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidClaim, ClaimTokenID)
		}
		id = int64(v)
	default:
		return CarrierClaims{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidClaim, ClaimTokenID)
	}

	if id <= 0 {
		return CarrierClaims{}, fmt.Errorf("%w: %s must be positive", ErrInvalidClaim, ClaimTokenID)
	}
	return CarrierClaims{TokenID: id}, nil
}
