package evalstats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteJSONLines(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "runs", "run_log")
	items := []any{
		"run-001",
		map[string]any{"run_id": "run-002", "fitness": 0.7},
	}
	if err := WriteJSONLines(outPath, items); err != nil {
		t.Fatalf("write json lines: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read json lines: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "\"run-001\"") {
		t.Fatalf("expected first item line, got:\n%s", text)
	}
	if !strings.Contains(text, "\"run_id\":\"run-002\"") {
		t.Fatalf("expected second item line, got:\n%s", text)
	}
	if strings.Count(text, "\n") != 2 {
		t.Fatalf("expected 2 lines, got %d", strings.Count(text, "\n"))
	}
}
