package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesSessionStampedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	Trace("hub.list", map[string]interface{}{"index": 1})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open trace: %v", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatalf("expected a trace line")
	}
	var entry map[string]interface{}
	if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
		t.Fatalf("decode trace: %v", err)
	}
	if entry["event"] != "hub.list" {
		t.Fatalf("expected event hub.list, got %v", entry["event"])
	}
	if entry["session"] != Session() || Session() == "" {
		t.Fatalf("expected session %q, got %v", Session(), entry["session"])
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	Configure(path)
	SetTraceEnabled(false)
	t.Cleanup(func() { Configure("") })

	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no trace file, stat err=%v", err)
	}
}

func TestErrorAppendsToLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(nil)
	Error(errors.New("bridge went away"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "bridge went away") {
		t.Fatalf("expected error in log, got %q", string(data))
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Fatalf("expected a single entry, got %q", string(data))
	}
}
