package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the email authentication service. It covers the
// unauthenticated endpoints and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RequestCode asks the service to email a one-time code to the address.
//
// A *Error with Code ErrorCodeCodePending is returned when a code for the
// address is still live.
func (c *SDKClient) RequestCode(ctx context.Context, email string) error {
	req := LoginRequest{Email: email}
	if err := req.Validate(); err != nil {
		return NewValidationError(err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/login", req, "")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Exchange trades an emailed code for an API token and returns a Session
// carrying it.
func (c *SDKClient) Exchange(ctx context.Context, email, code string) (*Session, error) {
	req := AuthenticateRequest{Email: email, EmailToken: code}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/authenticate", req, "")
	if err != nil {
		return nil, err
	}
	carrier := carrierFromHeader(resp.Header.Get("Authorization"))

	var body AuthenticateResponse
	if err := decodeJSON(resp, &body, http.StatusOK); err != nil {
		return nil, err
	}
	if carrier == "" {
		return nil, fmt.Errorf("authenticate response carried no Authorization header")
	}

	return c.NewSession(carrier, time.Now().Add(time.Duration(body.ExpiresIn)*time.Second)), nil
}

// NewSession wraps a carrier obtained earlier (e.g. one stored on disk).
// A zero expiresAt means unknown.
func (c *SDKClient) NewSession(carrier string, expiresAt time.Time) *Session {
	return &Session{
		client:    c,
		carrier:   carrier,
		expiresAt: expiresAt,
	}
}

func carrierFromHeader(v string) string {
	v = strings.TrimSpace(v)
	if scheme, rest, ok := strings.Cut(v, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return v
}
