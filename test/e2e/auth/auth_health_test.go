package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestStatusEndpoint verifies the root status endpoint.
func TestStatusEndpoint(t *testing.T) {
	c := setupAuthContainer(t)
	client := authsdk.NewSDKClient(c.BaseURL)

	status, err := client.GetStatus(t.Context())
	require.NoError(t, err)
	require.True(t, status.Up)
}

// TestLivezEndpoint verifies the liveness check endpoint works.
func TestLivezEndpoint(t *testing.T) {
	c := setupAuthContainer(t)
	client := authsdk.NewSDKClient(c.BaseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies the readiness check covers the database and signer.
func TestReadyzEndpoint(t *testing.T) {
	c := setupAuthContainer(t)
	client := authsdk.NewSDKClient(c.BaseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Signer)
}
