// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type fakeVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (f fakeVerifier) VerifyAccessToken(context.Context, string) (*AccessTokenClaims, error) {
	return f.claims, f.err
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body core.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestAuthenticator(t *testing.T) {
	okClaims := &AccessTokenClaims{UserID: 7, Role: RoleLandlord}

	tests := []struct {
		name       string
		header     string
		verifier   fakeVerifier
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid token",
			header:     "Bearer good",
			verifier:   fakeVerifier{claims: okClaims},
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase scheme",
			header:     "bearer good",
			verifier:   fakeVerifier{claims: okClaims},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "expired",
			header:     "Bearer old",
			verifier:   fakeVerifier{err: fmt.Errorf("verify: %w", core.ErrTokenExpired)},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "TOKEN_EXPIRED",
		},
		{
			name:       "invalid",
			header:     "Bearer forged",
			verifier:   fakeVerifier{err: fmt.Errorf("verify: %w", core.ErrTokenInvalid)},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "TOKEN_INVALID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID = GetUserID(r.Context())
				gotRole = GetUserRole(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Authenticator(tt.verifier)(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}
			assert.Equal(t, int64(7), gotID)
			assert.Equal(t, RoleLandlord, gotRole)
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		mw         func(http.Handler) http.Handler
		claims     *AccessTokenClaims
		wantStatus int
	}{
		{"staff admits manager", RequireStaff, &AccessTokenClaims{UserID: 1, Role: RoleManager}, http.StatusNoContent},
		{"staff admits landlord", RequireStaff, &AccessTokenClaims{UserID: 2, Role: RoleLandlord}, http.StatusNoContent},
		{"staff rejects other role", RequireStaff, &AccessTokenClaims{UserID: 3, Role: "tenant"}, http.StatusForbidden},
		{"manager rejects landlord", RequireManager, &AccessTokenClaims{UserID: 2, Role: RoleLandlord}, http.StatusForbidden},
		{"no claims", RequireStaff, nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestWithClaims(t *testing.T) {
	claims := &AccessTokenClaims{UserID: 12, Role: RoleManager}
	ctx := WithClaims(context.Background(), claims)

	assert.True(t, IsAuthenticated(ctx))
	assert.Same(t, claims, GetClaims(ctx))
	assert.False(t, IsAuthenticated(context.Background()))
	assert.Nil(t, GetClaims(context.Background()))
}
