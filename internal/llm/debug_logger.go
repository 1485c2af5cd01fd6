package llm

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DebugLogger logs suggestion requests and results to a JSONL file. A nil
// *DebugLogger is valid and logs nothing, so callers never need to guard.
// Logging must never interfere with suggestions; write errors are swallowed.
type DebugLogger struct {
	sessionID string
	mu        sync.Mutex
	file      *os.File
	writer    *bufio.Writer
	closed    bool
	closeOnce sync.Once
}

type debugLogEntry struct {
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id"`
	Type      string `json:"type"` // "request" or "result"
}

type debugRequestEntry struct {
	debugLogEntry
	Provider string `json:"provider"`
	Input    string `json:"input"`
	System   string `json:"system,omitempty"`
}

type debugResultEntry struct {
	debugLogEntry
	Provider   string `json:"provider"`
	Command    string `json:"command,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// NewDebugLogger creates a JSONL logger for one editor session. Log files
// older than 7 days are removed as a side effect.
func NewDebugLogger(baseDir, sessionID string) (*DebugLogger, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, err
	}

	_ = CleanupOldLogs(baseDir, 7*24*time.Hour)

	filename := filepath.Join(baseDir, sessionID+".jsonl")
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	return &DebugLogger{
		sessionID: sessionID,
		file:      file,
		writer:    bufio.NewWriter(file),
	}, nil
}

// LogRequest records an outgoing suggestion request.
func (l *DebugLogger) LogRequest(provider string, req Request) {
	if l == nil {
		return
	}
	l.writeEntry(debugRequestEntry{
		debugLogEntry: l.entry("request"),
		Provider:      provider,
		Input:         req.Input,
		System:        req.System,
	})
}

// LogResult records the outcome of a suggestion request.
func (l *DebugLogger) LogResult(provider, command string, err error, elapsed time.Duration) {
	if l == nil {
		return
	}
	entry := debugResultEntry{
		debugLogEntry: l.entry("result"),
		Provider:      provider,
		Command:       command,
		DurationMS:    elapsed.Milliseconds(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	l.writeEntry(entry)
}

func (l *DebugLogger) entry(kind string) debugLogEntry {
	return debugLogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		SessionID: l.sessionID,
		Type:      kind,
	}
}

func (l *DebugLogger) writeEntry(entry any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.writer.Write(data)
	l.writer.WriteString("\n")
	l.writer.Flush()
}

// Close flushes and closes the log file. Close is idempotent.
func (l *DebugLogger) Close() error {
	if l == nil {
		return nil
	}

	var closeErr error
	l.closeOnce.Do(func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		if l.file == nil {
			return
		}
		if err := l.writer.Flush(); err != nil {
			closeErr = err
		}
		if err := l.file.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
		l.closed = true
	})
	return closeErr
}

// CleanupOldLogs removes JSONL log files older than maxAge from the
// specified directory so debug logs don't accumulate indefinitely.
func CleanupOldLogs(baseDir string, maxAge time.Duration) error {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(baseDir, entry.Name()))
		}
	}

	return nil
}
