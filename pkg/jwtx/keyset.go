package jwtx

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync"
)

// MinSecretBytes is the shortest HMAC secret the ring accepts. HS256 keys
// shorter than the hash output weaken the MAC.
const MinSecretBytes = 32

var (
	ErrNoKey       = errors.New("jwtx: key not found")
	ErrWeakSecret  = errors.New("jwtx: secret shorter than 32 bytes")
	ErrEmptySecret = errors.New("jwtx: empty secret")
)

// SecretRing holds the HMAC secrets used for carriers. The current secret
// signs; every secret in the ring verifies, so a rotated-out secret keeps
// outstanding carriers working until it is dropped from configuration.
type SecretRing struct {
	mu      sync.RWMutex
	current string
	secrets map[string][]byte
	order   []string
}

// NewSecretRing builds a ring whose current signing secret is primary.
// previous secrets are verify-only.
func NewSecretRing(primary []byte, previous ...[]byte) (*SecretRing, error) {
	r := &SecretRing{secrets: make(map[string][]byte)}
	if err := r.add(primary); err != nil {
		return nil, err
	}
	r.current = SecretKID(primary)

	for _, p := range previous {
		if err := r.add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *SecretRing) add(secret []byte) error {
	switch {
	case len(secret) == 0:
		return ErrEmptySecret
	case len(secret) < MinSecretBytes:
		return ErrWeakSecret
	}

	kid := SecretKID(secret)
	if _, ok := r.secrets[kid]; ok {
		return nil
	}
	r.secrets[kid] = append([]byte(nil), secret...)
	r.order = append(r.order, kid)
	return nil
}

// SecretKID derives a stable key id from a secret without revealing it.
func SecretKID(secret []byte) string {
	sum := sha256.Sum256(secret)
	return base64.RawURLEncoding.EncodeToString(sum[:8])
}

// Current returns the signing secret and its kid.
func (r *SecretRing) Current() (string, []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.secrets[r.current]
}

// Get returns the secret for the given kid.
func (r *SecretRing) Get(kid string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.secrets[kid]; ok {
		return s, nil
	}
	return nil, ErrNoKey
}

// All returns every secret, current first.
func (r *SecretRing) All() [][]byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([][]byte, 0, len(r.order))
	for _, kid := range r.order {
		out = append(out, r.secrets[kid])
	}
	return out
}

// Rotate promotes secret to the signing secret, keeping the old one for
// verification.
func (r *SecretRing) Rotate(secret []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.add(secret); err != nil {
		return err
	}

	kid := SecretKID(secret)
	r.current = kid

	// Keep current at the head of order.
	reordered := []string{kid}
	for _, k := range r.order {
		if k != kid {
			reordered = append(reordered, k)
		}
	}
	r.order = reordered
	return nil
}

// IsReady returns true if the ring has a signing secret.
func (r *SecretRing) IsReady() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.secrets[r.current]) > 0
}
