package tests

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/config"
)

func TestDefaultPath_ReturnsPathInHomeDir(t *testing.T) {
	p, err := config.DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath returned error: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir returned error: %v", err)
	}

	want := filepath.Join(home, ".usersctl", "credentials.json")
	if p != want {
		t.Fatalf("expected %q, got %q", want, p)
	}
}

func TestLoad_FileNotExists_ReturnsEmptyCredentials(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds == nil {
		t.Fatalf("expected non-nil creds")
	}
	if _, err := creds.Token(); !errors.Is(err, config.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "credentials.json") // вложенная директория

	want := &config.Credentials{
		ServerURL:   "http://127.0.0.1:3000",
		AccessToken: "access-1",
		UserID:      "u1",
		Email:       "ann@example.com",
	}
	if err := config.Save(p, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := config.Load(p)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *got != *want {
		t.Fatalf("expected %+v, got %+v", *want, *got)
	}

	token, err := got.Token()
	if err != nil || token != "access-1" {
		t.Fatalf("expected token access-1, got %q, %v", token, err)
	}

	// права 0600 проверяем только там, где они поддерживаются
	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		if err != nil {
			t.Fatalf("Stat returned error: %v", err)
		}
		if st.Mode().Perm() != 0o600 {
			t.Fatalf("expected perm 0600, got %v", st.Mode().Perm())
		}
	}
}

func TestLoad_InvalidJSON_ReturnsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(p, []byte("{not-json"), 0o600); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	if _, err := config.Load(p); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestRemove_MissingFileIsOK(t *testing.T) {
	if err := config.Remove(filepath.Join(t.TempDir(), "nope.json")); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
}
