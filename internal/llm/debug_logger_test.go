package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNilDebugLoggerIsSafe(t *testing.T) {
	var l *DebugLogger
	l.LogRequest("mock", Request{Input: "git st"})
	l.LogResult("mock", "git status", nil, time.Millisecond)
	if err := l.Close(); err != nil {
		t.Errorf("nil logger Close: %v", err)
	}
}

func TestDebugLoggerWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	l, err := NewDebugLogger(dir, "session-1")
	if err != nil {
		t.Fatalf("NewDebugLogger: %v", err)
	}

	l.LogRequest("mock", Request{System: "sys", Input: "git st"})
	l.LogResult("mock", "git status", nil, 42*time.Millisecond)
	l.LogResult("mock", "", fmt.Errorf("boom"), time.Millisecond)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "session-1.jsonl"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d", len(lines))
	}

	var req debugRequestEntry
	if err := json.Unmarshal([]byte(lines[0]), &req); err != nil {
		t.Fatalf("unmarshal request line: %v", err)
	}
	if req.Type != "request" || req.Input != "git st" || req.Provider != "mock" {
		t.Errorf("unexpected request entry: %+v", req)
	}

	var res debugResultEntry
	if err := json.Unmarshal([]byte(lines[1]), &res); err != nil {
		t.Fatalf("unmarshal result line: %v", err)
	}
	if res.Command != "git status" || res.Error != "" || res.DurationMS != 42 {
		t.Errorf("unexpected result entry: %+v", res)
	}

	var failed debugResultEntry
	if err := json.Unmarshal([]byte(lines[2]), &failed); err != nil {
		t.Fatalf("unmarshal error line: %v", err)
	}
	if failed.Error != "boom" {
		t.Errorf("error entry = %+v, want error %q", failed, "boom")
	}
}

func TestDebugLoggerCloseIdempotent(t *testing.T) {
	l, err := NewDebugLogger(t.TempDir(), "session-2")
	if err != nil {
		t.Fatalf("NewDebugLogger: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	// Writes after close are discarded, not a panic.
	l.LogResult("mock", "ls", nil, 0)
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "old.jsonl")
	if err := os.WriteFile(old, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-8 * 24 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	recent := filepath.Join(dir, "recent.jsonl")
	if err := os.WriteFile(recent, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	unrelated := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("keep"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := CleanupOldLogs(dir, 7*24*time.Hour); err != nil {
		t.Fatalf("CleanupOldLogs: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old log file still present")
	}
	if _, err := os.Stat(recent); err != nil {
		t.Errorf("recent log file removed: %v", err)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Errorf("non-jsonl file removed: %v", err)
	}
}

func TestWithLoggingPassesThrough(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewDebugLogger(dir, "session-3")
	if err != nil {
		t.Fatalf("NewDebugLogger: %v", err)
	}
	defer logger.Close()

	p := WithLogging(WrapWithSanitize(NewMockProvider()), logger)
	got, err := p.Suggest(context.Background(), Request{Input: "git st"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != "git status" {
		t.Errorf("Suggest = %q, want %q", got, "git status")
	}

	data, err := os.ReadFile(filepath.Join(dir, "session-3.jsonl"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if count := strings.Count(string(data), "\n"); count != 2 {
		t.Errorf("expected request and result lines, got %d lines", count)
	}
}

func TestWithLoggingNilLogger(t *testing.T) {
	inner := WrapWithSanitize(NewMockProvider())
	if p := WithLogging(inner, nil); p != inner {
		t.Error("WithLogging(nil) should return the inner provider unchanged")
	}
}
