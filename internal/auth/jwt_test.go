// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/apartment-api/internal/config"
	"github.com/carterperez-dev/apartment-api/internal/core"
)

func testJWTConfig(ttl time.Duration) config.JWTConfig {
	return config.JWTConfig{
		AccessTokenExpire: ttl,
		Issuer:            "apartment-api",
		Audience:          "apartment-api",
	}
}

func newTestKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func newTestManager(t *testing.T, ttl time.Duration) *JWTManager {
	t.Helper()

	m, err := NewJWTManagerFromECDSA(newTestKey(t), testJWTConfig(ttl))
	require.NoError(t, err)
	return m
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(t, 24*time.Hour)

	signed, err := m.CreateAccessToken(AccessTokenClaims{UserID: 42, Role: "manager"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), signed.ExpiresAt, 5*time.Second)

	claims, err := m.VerifyAccessToken(context.Background(), signed.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	m := newTestManager(t, -time.Minute)

	signed, err := m.CreateAccessToken(AccessTokenClaims{UserID: 1, Role: "landlord"})
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), signed.Token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyAccessToken_Rejects(t *testing.T) {
	key := newTestKey(t)
	issuer, err := NewJWTManagerFromECDSA(key, testJWTConfig(time.Hour))
	require.NoError(t, err)

	signed, err := issuer.CreateAccessToken(AccessTokenClaims{UserID: 1, Role: "manager"})
	require.NoError(t, err)

	otherAudience := testJWTConfig(time.Hour)
	otherAudience.Audience = "someone-else"
	wrongAudience, err := NewJWTManagerFromECDSA(key, otherAudience)
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier *JWTManager
		token    string
	}{
		{name: "garbage", verifier: issuer, token: "not-a-token"},
		{name: "other key", verifier: newTestManager(t, time.Hour), token: signed.Token},
		{name: "wrong audience", verifier: wrongAudience, token: signed.Token},
		{name: "tampered", verifier: issuer, token: signed.Token[:len(signed.Token)-4] + "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.VerifyAccessToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, core.ErrTokenInvalid)
		})
	}
}

func TestExpiredTokenFromOtherKeyIsInvalid(t *testing.T) {
	expired := newTestManager(t, -time.Minute)
	signed, err := expired.CreateAccessToken(AccessTokenClaims{UserID: 1, Role: "manager"})
	require.NoError(t, err)

	_, err = newTestManager(t, time.Hour).VerifyAccessToken(context.Background(), signed.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandler(t *testing.T) {
	m := newTestManager(t, time.Hour)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var set struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.Keys, 1)
	assert.Equal(t, "EC", set.Keys[0]["kty"])
	assert.Equal(t, m.GetKeyID(), set.Keys[0]["kid"])
	assert.NotContains(t, set.Keys[0], "d")
}

func TestGenerateKeyPairLoads(t *testing.T) {
	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(priv, pub))

	cfg := testJWTConfig(time.Hour)
	cfg.PrivateKeyPath = priv
	m, err := NewJWTManager(cfg)
	require.NoError(t, err)

	signed, err := m.CreateAccessToken(AccessTokenClaims{UserID: 3, Role: "landlord"})
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(context.Background(), signed.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
}
