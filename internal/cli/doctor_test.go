package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bpstudios/widescreen/internal/api"
)

func TestCheckRemoteReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/titles" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]string{"Oldboy", "Heat"})
	}))
	defer server.Close()

	ctx := &Context{API: api.New(server.URL)}
	if err := checkRemoteReachable(ctx); err != nil {
		t.Errorf("reachable backend reported: %v", err)
	}
}

func TestCheckRemoteReachableDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	ctx := &Context{API: api.New(server.URL)}
	if err := checkRemoteReachable(ctx); err == nil {
		t.Error("unreachable backend reported healthy")
	}
}
