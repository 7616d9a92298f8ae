package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/internal/models"
)

// mockSnapshotService implements services.SnapshotServicer for testing
type mockSnapshotService struct{}

func (m *mockSnapshotService) Build(ctx context.Context) (*models.Snapshot, error) {
	return &models.Snapshot{Period: "2019-02"}, nil
}

func (m *mockSnapshotService) LatestPeriod(ctx context.Context) (models.Period, error) {
	return models.Period{Year: 2019, Month: time.February}, nil
}

func TestNew_CreatesHub(t *testing.T) {
	hub := New(logger.New(), &mockSnapshotService{})
	if hub == nil {
		t.Fatal("expected hub, got nil")
	}
	if hub.clients == nil {
		t.Error("clients map not initialized")
	}
}

func TestServeWs_SendsLatestPeriodOnConnect(t *testing.T) {
	hub := New(logger.New(), &mockSnapshotService{})
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg models.WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msg.Type != "latest_period" {
		t.Errorf("message type = %q, want latest_period", msg.Type)
	}
	payload, ok := msg.Payload.(map[string]interface{})
	if !ok || payload["period"] != "2019-02" {
		t.Errorf("payload = %v, want period 2019-02", msg.Payload)
	}
}

func TestBroadcastSnapshotRefreshed(t *testing.T) {
	hub := New(logger.New(), &mockSnapshotService{})
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Drain the connect greeting first
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var greeting models.WSMessage
	if err := conn.ReadJSON(&greeting); err != nil {
		t.Fatalf("greeting read failed: %v", err)
	}

	hub.BroadcastSnapshotRefreshed("2019-03")

	var msg models.WSMessage
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("broadcast read failed: %v", err)
	}
	if msg.Type != "snapshot_refreshed" {
		t.Errorf("message type = %q, want snapshot_refreshed", msg.Type)
	}
	payload, ok := msg.Payload.(map[string]interface{})
	if !ok || payload["period"] != "2019-03" {
		t.Errorf("payload = %v, want period 2019-03", msg.Payload)
	}
}
