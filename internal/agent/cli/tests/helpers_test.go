package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/config"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

// newTLSApp поднимает HTTPS тестовый сервер и App, который в него ходит.
func newTLSApp(t *testing.T, mux *http.ServeMux, creds *config.Credentials) *cli.App {
	t.Helper()

	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)

	if creds == nil {
		creds = &config.Credentials{}
	}

	return &cli.App{
		ServerURL: srv.URL,
		Insecure:  true, // самоподписанный сертификат httptest
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     creds,
	}
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func sampleUser(id, email string) models.User {
	now := time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)
	return models.User{ID: id, Name: "Ann", Email: email, CreatedAt: now, UpdatedAt: now}
}
