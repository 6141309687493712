package jwtx

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signRS256(t *testing.T, key *rsa.PrivateKey, kid string, claims Claims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, &claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestRS256VerifierRoundTrip(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddJWK(NewRSAJWK("kid-1", "sig", "RS256", &key.PublicKey)))

	v := NewVerifierRS256(keys, "https://idp.example", nil)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://idp.example",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: []string{"IdentityAdmin"},
	}

	got, err := v.Verify(signRS256(t, key, "kid-1", claims))
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.True(t, got.HasRole("IdentityAdmin"))
	require.False(t, got.HasRole("SomethingElse"))
}

func TestRS256VerifierRejectsUnknownKid(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddJWK(NewRSAJWK("kid-1", "sig", "RS256", &key.PublicKey)))

	v := NewVerifierRS256(keys, "", nil)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	_, err = v.Verify(signRS256(t, key, "kid-other", claims))
	require.Error(t, err)
}

func TestRS256VerifierRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddJWK(NewRSAJWK("kid-1", "sig", "RS256", &key.PublicKey)))

	v := NewVerifierRS256(keys, "https://idp.example", nil)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://intruder.example",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	_, err = v.Verify(signRS256(t, key, "kid-1", claims))
	require.ErrorIs(t, err, ErrIssuer)
}

func TestClaimsValidateExpiry(t *testing.T) {
	t.Parallel()

	expired := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	require.ErrorIs(t, expired.ValidateExpiry(), ErrExpired)

	future := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	require.ErrorIs(t, future.ValidateExpiry(), ErrNotYetValid)

	valid := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	require.NoError(t, valid.ValidateExpiry())
}
