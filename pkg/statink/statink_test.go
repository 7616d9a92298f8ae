package statink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abrezinsky/inkstats/internal/logger"
)

func TestFetchWeapons(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weapon" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"key": "sshooter", "splatnet": 40, "type": {"key": "shooter"}, "sub": {"key": "quickbomb"}, "special": {"key": "splashbomb_pitcher"}, "main_ref": "sshooter", "reskin_of": null},
			{"key": "heroshooter_replica", "splatnet": 45, "type": {"key": "shooter"}, "sub": {"key": "quickbomb"}, "special": {"key": "splashbomb_pitcher"}, "main_ref": "sshooter", "reskin_of": "sshooter"}
		]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, logger.New())
	weapons, err := client.FetchWeapons(context.Background())
	if err != nil {
		t.Fatalf("FetchWeapons failed: %v", err)
	}
	if len(weapons) != 2 {
		t.Fatalf("expected 2 weapons, got %d", len(weapons))
	}
	if weapons[0].Key != "sshooter" || weapons[0].Splatnet != 40 {
		t.Errorf("unexpected first weapon: %+v", weapons[0])
	}
	if weapons[0].ReskinOf != nil {
		t.Error("sshooter should have nil ReskinOf")
	}
	if weapons[1].ReskinOf == nil || *weapons[1].ReskinOf != "sshooter" {
		t.Error("heroshooter_replica should be a reskin of sshooter")
	}
	if weapons[1].Sub.Key != "quickbomb" {
		t.Errorf("Sub.Key = %q", weapons[1].Sub.Key)
	}
}

func TestFetchWeapons_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, logger.New())
	if _, err := client.FetchWeapons(context.Background()); err == nil {
		t.Error("expected error on 502 response, got nil")
	}
}

func TestFetchWeapons_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, logger.New())
	if _, err := client.FetchWeapons(context.Background()); err == nil {
		t.Error("expected error on malformed body, got nil")
	}
}

func TestNewHTTPClient_DefaultBaseURL(t *testing.T) {
	client := NewHTTPClient("", logger.New())
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}
}
