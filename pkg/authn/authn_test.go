package authn

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestToken creates a JWT token with the specified user ID and extra claims
func CreateTestToken(userID string, extraClaims ExtraClaims, secret []byte) (string, error) {
	tokenAuth := jwtauth.New("HS256", secret, nil)

	claims := map[string]interface{}{
		"sub":     userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"user_id": userID,
		"extra_claims": map[string]interface{}{
			"email": extraClaims.Email,
			"roles": extraClaims.Roles,
		},
	}

	_, tokenString, err := tokenAuth.Encode(claims)
	return tokenString, err
}

func TestAuthUserMiddleware(t *testing.T) {
	secret := []byte("test-jwt-secret-key")
	tokenAuth := jwtauth.New("HS256", secret, nil)

	userID := uuid.New().String()
	tokenString, err := CreateTestToken(userID, ExtraClaims{
		Email: "test@example.com",
		Roles: []string{"user", "admin"},
	}, secret)
	require.NoError(t, err)

	var captured *AuthUser
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = AuthUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	stack := Verifier(tokenAuth)(AuthUserMiddleware(handler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserId)
	assert.Equal(t, userID, captured.UserUuid.String())
	assert.Equal(t, "test@example.com", captured.ExtraClaims.Email)
	assert.Equal(t, []string{"user", "admin"}, captured.ExtraClaims.Roles)
}

func TestAuthUserMiddlewareRejectsMissingToken(t *testing.T) {
	secret := []byte("test-jwt-secret-key")
	tokenAuth := jwtauth.New("HS256", secret, nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	stack := Verifier(tokenAuth)(AuthUserMiddleware(handler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenFromCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ACCESS_TOKEN_NAME, Value: "cookie-token"})

	assert.Equal(t, "cookie-token", TokenFromCookie(req))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", TokenFromCookie(bare))
}

func TestIsAdminWithRoles(t *testing.T) {
	admin := &AuthUser{ExtraClaims: ExtraClaims{Roles: []string{"admin"}}}
	superadmin := &AuthUser{ExtraClaims: ExtraClaims{Roles: []string{"superadmin"}}}
	plain := &AuthUser{ExtraClaims: ExtraClaims{Roles: []string{"user"}}}

	assert.True(t, IsAdmin(admin))
	assert.True(t, IsAdmin(superadmin))
	assert.False(t, IsAdmin(plain))
	assert.False(t, IsAdmin(nil))

	assert.True(t, IsAdminWithRoles(plain, []string{"user"}))
	assert.False(t, IsAdminWithRoles(plain, []string{"operator"}))
}
