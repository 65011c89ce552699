package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/agent/api"
)

func newClient(t *testing.T, mux *http.ServeMux) *api.Client {
	t.Helper()

	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)

	return api.NewClient(srv.URL+"/", api.WithHTTPClient(srv.Client()))
}

func TestClient_PostJSON_SetsHeaders_AndDecodesResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, float64(1), got["a"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	c := newClient(t, mux)

	var resp map[string]any
	require.NoError(t, c.PostJSON(context.Background(), "/x", map[string]any{"a": 1}, &resp, "token-1"))
	require.Equal(t, true, resp["ok"])
}

func TestClient_GetJSON_WithoutAuth_DoesNotSetAuthorization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		require.Empty(t, r.Header.Get("Content-Type"))
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	c := newClient(t, mux)

	var resp map[string]any
	require.NoError(t, c.GetJSON(context.Background(), "/x", &resp, ""))
}

// {"error": "..."} разбирается в APIError
func TestClient_Non2xx_ReturnsAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"user not found"}`))
	})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("  plain text  "))
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := newClient(t, mux)
	ctx := context.Background()

	err := c.GetJSON(ctx, "/json", nil, "")
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "user not found", apiErr.Message)
	require.Equal(t, http.StatusNotFound, api.StatusOf(err))

	err = c.GetJSON(ctx, "/text", nil, "")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "plain text", apiErr.Message)

	err = c.DeleteJSON(ctx, "/empty", nil, "")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "500 Internal Server Error", apiErr.Message)
}

func TestClient_204AndEmptyBody_AreOK(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/nocontent", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	c := newClient(t, mux)
	ctx := context.Background()

	var resp map[string]any
	require.NoError(t, c.PutJSON(ctx, "/nocontent", map[string]any{"a": 1}, &resp, "t"))
	require.NoError(t, c.GetJSON(ctx, "/empty", &resp, ""))
	require.Nil(t, resp)
}

func TestClient_PutJSON_ReqNil_DoesNotSetContentType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	})

	c := newClient(t, mux)
	require.NoError(t, c.PutJSON(context.Background(), "/x", nil, nil, ""))
}

func TestClient_BadRequestEncoding_ReturnsError(t *testing.T) {
	c := api.NewClient("http://127.0.0.1:1")

	// канал не сериализуется в JSON, до сети дело не доходит
	err := c.PostJSON(context.Background(), "/x", map[string]any{"ch": make(chan int)}, nil, "")
	require.Error(t, err)
	require.Zero(t, api.StatusOf(err))
}

func TestClient_ContextCanceled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("request must not reach the server")
	})

	c := newClient(t, mux)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, c.GetJSON(ctx, "/x", nil, ""), context.Canceled)
}
