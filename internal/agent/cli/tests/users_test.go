package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/config"
	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

func requireBearer(t *testing.T, r *http.Request, token string) {
	t.Helper()
	if got := r.Header.Get("Authorization"); got != "Bearer "+token {
		t.Fatalf("expected Authorization Bearer %s, got %q", token, got)
	}
}

func TestUsersList_SendsFilterAndPrintsJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r, "access-1")

		q := r.URL.Query()
		if got := q.Get("name[ilike]"); got != "%ann%" {
			t.Fatalf("expected name[ilike]=%%ann%%, got %q", got)
		}
		if got := q.Get("createdAt[between]"); got != "2024-01-01,2024-12-31" {
			t.Fatalf("unexpected createdAt[between]: %q", got)
		}
		if got := q.Get("relations"); got != "profile" {
			t.Fatalf("unexpected relations: %q", got)
		}

		writeJSON(w, http.StatusOK, []models.User{sampleUser("u1", "ann@example.com")})
	})

	app := newTLSApp(t, mux, &config.Credentials{AccessToken: "access-1"})

	out, err := run(cli.NewUsersCmd(app), "list",
		"--filter", "name[ilike]=%ann%",
		"--filter", "createdAt[between]=2024-01-01,2024-12-31",
		"--relations", "profile",
	)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	var users []models.User
	if err := json.Unmarshal([]byte(out), &users); err != nil {
		t.Fatalf("output is not JSON: %v, %q", err, out)
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestUsersList_NotLoggedIn(t *testing.T) {
	app := newTLSApp(t, http.NewServeMux(), nil)

	_, err := run(cli.NewUsersCmd(app), "list")
	if !errors.Is(err, config.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestUsersGet_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/u404", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: serr.MsgUserNotFound})
	})

	app := newTLSApp(t, mux, &config.Credentials{AccessToken: "access-1"})

	_, err := run(cli.NewUsersCmd(app), "get", "u404")
	if err == nil || !strings.Contains(err.Error(), serr.MsgUserNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

// передаются только заданные флаги
func TestUsersUpdate_SendsOnlyChangedFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/u1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		requireBearer(t, r, "access-1")

		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(raw) != 1 || raw["name"] != "Bob" {
			t.Fatalf("expected only name=Bob, got %#v", raw)
		}

		u := sampleUser("u1", "ann@example.com")
		u.Name = "Bob"
		writeJSON(w, http.StatusOK, u)
	})

	app := newTLSApp(t, mux, &config.Credentials{AccessToken: "access-1"})

	out, err := run(cli.NewUsersCmd(app), "update", "u1", "--name", "Bob")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, `"name": "Bob"`) {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUsersUpdate_NothingToUpdate(t *testing.T) {
	app := newTLSApp(t, http.NewServeMux(), &config.Credentials{AccessToken: "access-1"})

	_, err := run(cli.NewUsersCmd(app), "update", "u1")
	if !errors.Is(err, cli.ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
}

func TestUsersDelete_PrintsDeletedUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/u1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		writeJSON(w, http.StatusOK, models.DeleteUserResponse{
			Message: "user deleted",
			User:    sampleUser("u1", "ann@example.com"),
		})
	})

	app := newTLSApp(t, mux, &config.Credentials{AccessToken: "access-1"})

	out, err := run(cli.NewUsersCmd(app), "delete", "u1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, "user deleted") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestParseFilterFlags(t *testing.T) {
	q, err := cli.ParseFilterFlags([]string{"name=Ann", "email[in]=a@x.com,b@x.com", "name[like]=A=B"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if q.Get("name") != "Ann" || q.Get("email[in]") != "a@x.com,b@x.com" || q.Get("name[like]") != "A=B" {
		t.Fatalf("unexpected query: %v", q)
	}

	if _, err := cli.ParseFilterFlags([]string{"no-equals"}); err == nil {
		t.Fatalf("expected error for filter without '='")
	}
	if _, err := cli.ParseFilterFlags([]string{"=value"}); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestMeCmd_PrintsClaims(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r, "access-1")
		writeJSON(w, http.StatusOK, models.MeResponse{ID: "u1", Email: "ann@example.com"})
	})

	app := newTLSApp(t, mux, &config.Credentials{AccessToken: "access-1"})

	out, err := run(cli.NewMeCmd(app))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, `"id": "u1"`) {
		t.Fatalf("unexpected output: %q", out)
	}
}
