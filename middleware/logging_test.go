package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	prev := logx.L
	logx.L = zap.New(core)
	t.Cleanup(func() { logx.L = prev })
	return logs
}

func TestLoggingRecordsStatus(t *testing.T) {
	logs := observe(t)

	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logx.From(r.Context()).Info("inside")
		http.NotFound(w, r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rooms?roomId=x", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if _, ok := entries[0].ContextMap()["request_id"]; !ok {
		t.Error("Handler logger should carry request_id")
	}
	req := entries[1].ContextMap()
	if req["status"] != int64(http.StatusNotFound) || req["path"] != "/rooms" {
		t.Errorf("Unexpected request entry %v", req)
	}
}

func TestLoggingKeepsUpgrade(t *testing.T) {
	logs := observe(t)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	})))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial through Logging: %v", err)
	}
	conn.Close()
	srv.Close()

	found := logs.FilterMessage("http_request").All()
	if len(found) != 1 || found[0].ContextMap()["status"] != int64(http.StatusSwitchingProtocols) {
		t.Errorf("Expected one 101 request entry, got %v", found)
	}
}
