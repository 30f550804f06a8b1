package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerifierHS256(t *testing.T) {
	v := NewVerifier("top-secret", nil)

	t.Run("valid", func(t *testing.T) {
		tok := signHS(t, "top-secret", jwt.MapClaims{
			"sub":   "user-1",
			"email": "u@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		claims, err := v.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, Claims{Subject: "user-1", Email: "u@example.com"}, claims)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signHS(t, "other", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
		_, err := v.Verify(tok)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tok := signHS(t, "top-secret", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()})
		_, err := v.Verify(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("missing exp", func(t *testing.T) {
		tok := signHS(t, "top-secret", jwt.MapClaims{"sub": "user-1"})
		_, err := v.Verify(tok)
		assert.ErrorIs(t, err, ErrMissingExpiration)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok := signHS(t, "top-secret", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		_, err := v.Verify(tok)
		assert.Error(t, err)
	})
}

func TestVerifierRS256WithJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	v := NewVerifier("", NewProvider(srv.URL))

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tok.Header["kid"] = "k1"
	signed, err := tok.SignedString(key)
	require.NoError(t, err)

	claims, err := v.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.Subject)

	// cached on second call
	_, err = v.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	unknown := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "x", "exp": time.Now().Add(time.Hour).Unix()})
	unknown.Header["kid"] = "k2"
	signedUnknown, err := unknown.SignedString(key)
	require.NoError(t, err)
	_, err = v.Verify(signedUnknown)
	assert.Error(t, err)
}
