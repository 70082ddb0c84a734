package authsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ErrLoggedOut is returned by Session methods after Logout succeeded.
var ErrLoggedOut = errors.New("authsdk: session logged out")

// Session holds an API token carrier and performs authenticated requests
// with it. Sessions are safe for concurrent use.
type Session struct {
	client *SDKClient

	mu        sync.RWMutex
	carrier   string
	expiresAt time.Time
}

// Carrier returns the signed token sent on each request.
func (s *Session) Carrier() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carrier
}

// ExpiresAt reports when the server will stop accepting the token.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) currentCarrier() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.carrier == "" {
		return "", ErrLoggedOut
	}
	return s.carrier, nil
}

// Me returns the authorization facts the server derives for this token.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := s.getJSON(ctx, "/v1/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches an identity. Only the identity itself or an admin may.
func (s *Session) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	var out UserResponse
	if err := s.getJSON(ctx, fmt.Sprintf("/v1/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResourceMembers lists the members of a resource. Only administrators of
// the resource or an admin may.
func (s *Session) ResourceMembers(ctx context.Context, resourceID int64) (*ResourceMembersResponse, error) {
	var out ResourceMembersResponse
	if err := s.getJSON(ctx, fmt.Sprintf("/v1/resources/%d/members", resourceID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the token server side. The session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	carrier, err := s.currentCarrier()
	if err != nil {
		return err
	}

	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/logout", nil, carrier)
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.carrier = ""
	s.mu.Unlock()
	return nil
}

func (s *Session) getJSON(ctx context.Context, path string, dst any) error {
	carrier, err := s.currentCarrier()
	if err != nil {
		return err
	}

	resp, err := s.client.doRequest(ctx, http.MethodGet, path, nil, carrier)
	if err != nil {
		return err
	}
	return decodeJSON(resp, dst, http.StatusOK)
}
