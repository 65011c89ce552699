package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

const testKey = "supersecretkeysupersecretkey123456"

// Вспомогательная функция для JWT
func makeToken(t *testing.T, key, id, iss, aud string, exp time.Time) string {
	t.Helper()

	claims := crypto.Claims{
		UserID: id,
		Email:  "a@mail.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    iss,
			Audience:  []string{aud},
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func mustNotBeCalled(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})
}

// Успех
func TestAuthMiddleware_OK(t *testing.T) {
	v := middleware.NewJWTVerifier(crypto.JWTConfig{SigningKey: testKey, Issuer: "issuer", Audience: "aud"})

	userID := uuid.New()
	token := makeToken(t, testKey, userID.String(), "issuer", "aud", time.Now().Add(time.Minute))

	called := false
	handler := v.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true

		uid, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			t.Fatal("user id not found in context")
		}
		if uid != userID.String() {
			t.Fatalf("unexpected user id: %v", uid)
		}

		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "a@mail.com", claims.Email)

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if !called {
		t.Fatal("handler was not called")
	}
}

// Нет токена
func TestAuthMiddleware_MissingToken(t *testing.T) {
	v := middleware.NewJWTVerifier(crypto.JWTConfig{SigningKey: testKey})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	v.AuthMiddleware()(mustNotBeCalled(t)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, middleware.MsgTokenNotProvided, errorMessage(t, rr))
}

// Заголовок есть, но не Bearer
func TestAuthMiddleware_Malformatted(t *testing.T) {
	v := middleware.NewJWTVerifier(crypto.JWTConfig{SigningKey: testKey})

	for _, hdr := range []string{"Token abc", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", hdr)
		rr := httptest.NewRecorder()

		v.AuthMiddleware()(mustNotBeCalled(t)).ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code, hdr)
		require.Equal(t, middleware.MsgTokenMalformatted, errorMessage(t, rr), hdr)
	}
}

// Токен истёк
func TestAuthMiddleware_Expired(t *testing.T) {
	v := middleware.NewJWTVerifier(crypto.JWTConfig{SigningKey: testKey})

	token := makeToken(t, testKey, "user", "", "", time.Now().Add(-time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	v.AuthMiddleware()(mustNotBeCalled(t)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, middleware.MsgTokenExpired, errorMessage(t, rr))
}

// Чужой ключ подписи
func TestAuthMiddleware_WrongKey(t *testing.T) {
	v := middleware.NewJWTVerifier(crypto.JWTConfig{SigningKey: testKey})

	token := makeToken(t, "another-key-another-key-another-key", "user", "", "", time.Now().Add(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	v.AuthMiddleware()(mustNotBeCalled(t)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, middleware.MsgInvalidToken, errorMessage(t, rr))
}

// Мусор вместо токена
func TestAuthMiddleware_Garbage(t *testing.T) {
	v := middleware.NewJWTVerifier(crypto.JWTConfig{SigningKey: testKey})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rr := httptest.NewRecorder()

	v.AuthMiddleware()(mustNotBeCalled(t)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, middleware.MsgInvalidToken, errorMessage(t, rr))
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.UserIDFromContext(req.Context())
	require.False(t, ok)
}

// Проверка форматов принимаемого токена
func TestExtractBearer(t *testing.T) {
	tests := []struct {
		hdr  string
		want string
	}{
		{"Bearer token", "token"},
		{"bearer token", "token"},
		{"BEARER token", "token"},
		{"  Bearer token  ", "token"},
		{"Bearer    token", ""},
		{"Bearer a b", ""},
		{"Bearer", ""},
		{"Token token", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := middleware.ExtractBearer(tt.hdr); got != tt.want {
			t.Errorf("ExtractBearer(%q) = %q, want %q", tt.hdr, got, tt.want)
		}
	}
}
