package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/api"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-user-accounts/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/logger"
)

var testJWT = crypto.JWTConfig{
	SigningKey: "supersecretkeysupersecretkey123456", // >= 32
	AccessTTL:  time.Hour,
}

// NewTestHandler создаёт Handler с моками хранилища через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, *svcmocks.MockUserReader, *svcmocks.MockUserWriter) {
	t.Helper()

	ctrl := gomock.NewController(t)

	reader := svcmocks.NewMockUserReader(ctrl)
	writer := svcmocks.NewMockUserWriter(ctrl)

	svc := &service.Services{
		Users: service.NewUserService(reader, writer, crypto.BcryptHasher{Cost: 4}, crypto.NewTokenIssuer(testJWT)),
	}

	log := logger.New(logger.Options{File: filepath.Join(t.TempDir(), "http.log")})

	return api.NewHandler(svc, log, middleware.NewJWTVerifier(testJWT)), reader, writer
}

// testRouter — маршруты без проверки токена, чтобы тестировать сами хендлеры.
func testRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Get("/me", h.Me)
	r.Post("/users", h.CreateUser)
	r.Get("/users", h.ListUsers)
	r.Get("/users/{id}", h.GetUser)
	r.Put("/users/{id}", h.UpdateUser)
	r.Delete("/users/{id}", h.DeleteUser)
	return r
}

func serve(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
