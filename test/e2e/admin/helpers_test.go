package admin_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/keystead/identity-admin/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for admin registry end-to-end tests.
 * This includes container setup, token minting, and assertions.
 *
 * The registry verifies tokens against a JWKS it loads at boot. The tests
 * play the identity provider: they generate an RSA keypair once, ship the
 * public half into the container as a JWKS file, and sign bearer tokens with
 * the private half.
 */

const (
	testImageName = "identity-admin-test:latest"

	testKeyID  = "identity-admin-e2e-key-001"
	testIssuer = "identity-provider"

	adminRole = "IdentityAdmin"
)

var (
	signingKey *rsa.PrivateKey
	jwksPath   string
)

// TestMain manages the test lifecycle: builds the Docker image and the JWKS
// file once before all tests and cleans both up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Admin Registry Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	cleanupJWKS, err := generateKeyMaterial()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate key material: %v\n", err)
		os.Exit(1)
	}

	exitCode := m.Run()

	cleanupJWKS()
	fmt.Fprintf(os.Stdout, "Cleaning up Admin Registry Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/admin/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// generateKeyMaterial creates the RSA keypair the tests sign with and writes
// its public half as a JWKS file that gets mounted into every container.
func generateKeyMaterial() (cleanup func(), err error) {
	signingKey, err = rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "identity-admin-e2e-jwks")
	if err != nil {
		return nil, err
	}

	jwks := jwtx.JWKS{
		Keys: []jwtx.JWK{
			jwtx.NewRSAJWK(testKeyID, "sig", "RS256", &signingKey.PublicKey),
		},
	}

	raw, err := json.Marshal(jwks)
	if err != nil {
		return nil, err
	}

	jwksPath = filepath.Join(dir, "jwks.json")
	if err := os.WriteFile(jwksPath, raw, 0o644); err != nil {
		return nil, err
	}

	return func() { _ = os.RemoveAll(dir) }, nil
}

// signToken mints an RS256 bearer token the way the identity provider would.
func signToken(t *testing.T, subject string, roles ...string) string {
	t.Helper()

	claims := jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID

	signed, err := token.SignedString(signingKey)
	require.NoError(t, err)

	return signed
}

// setupAdminContainer starts the admin registry in a container and returns
// the base URL.
func setupAdminContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Files: []testcontainers.ContainerFile{
			{
				HostFilePath:      jwksPath,
				ContainerFilePath: "/jwks.json",
				FileMode:          0o444,
			},
		},
		Env: map[string]string{
			"ADMIN_JWKS_FILE":     "/jwks.json",
			"ADMIN_ISSUER":        testIssuer,
			"ADMIN_DATABASE_FILE": "/tmp/admin.db",
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
			// Increase rate limits for E2E tests to prevent test failures.
			// Tests make many rapid requests which would otherwise hit the
			// strict production limits.
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// adminClient returns an SDK client authenticated with the administrator role.
func adminClient(t *testing.T, baseURL string) *adminsdk.SDKClient {
	t.Helper()
	return adminsdk.NewSDKClient(baseURL, signToken(t, "e2e-admin", adminRole))
}

// anonymousClient returns an SDK client without a bearer token.
func anonymousClient(baseURL string) *adminsdk.SDKClient {
	return adminsdk.NewSDKClient(baseURL, "")
}

// requireAPIStatus asserts that err is an APIError with the given status.
func requireAPIStatus(t *testing.T, err error, status int) *adminsdk.APIError {
	t.Helper()

	require.Error(t, err)
	var apiErr *adminsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)

	return apiErr
}
