package logx

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromFallsBackToGlobal(t *testing.T) {
	if From(context.Background()) != L {
		t.Error("Expected From on a bare context to return the global logger")
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := L
	L = zap.New(core)
	t.Cleanup(func() { L = prev })

	ctx := With(context.Background(), zap.String("room_id", "r1"))
	ctx = With(ctx, zap.String("user_id", "u1"))
	From(ctx).Info("joined")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["room_id"] != "r1" || fields["user_id"] != "u1" {
		t.Errorf("Expected room_id and user_id fields, got %v", fields)
	}
}

func TestInitWritesToFile(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev })

	path := filepath.Join(t.TempDir(), "client.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	L.Info("hello_file")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello_file") {
		t.Errorf("Expected log file to contain entry, got %q", data)
	}
}
