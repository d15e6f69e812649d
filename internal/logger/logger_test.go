package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// capture redirects output to a buffer for the rest of the test.
func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Fatal("expected verbose off")
	}
	SetVerbose(true)
	if !IsVerbose() {
		t.Fatal("expected verbose on")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{"debug verbose", true, func() { Debug("layout page %s", "2") }, "[DEBUG] layout page 2\n"},
		{"debug quiet", false, func() { Debug("layout page %s", "2") }, ""},
		{"info verbose", true, func() { Info("indexed %d documents", 3) }, "[INFO] indexed 3 documents\n"},
		{"info quiet", false, func() { Info("indexed %d documents", 3) }, ""},
		{"warn verbose", true, func() { Warn("skipping unreadable file") }, "[WARN] skipping unreadable file\n"},
		{"warn quiet", false, func() { Warn("skipping unreadable file") }, ""},
		{"section verbose", true, func() { Section("Export") }, "\n=== Export ===\n"},
		{"section quiet", false, func() { Section("Export") }, ""},
		{"error quiet", false, func() { Error("export %s failed: %v", "Rules.pdf", "disk full") }, "[ERROR] export Rules.pdf failed: disk full\n"},
		{"error verbose", true, func() { Error("snapshot failed") }, "[ERROR] snapshot failed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConcurrentWrites(t *testing.T) {
	buf := capture(t, true)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Debug("worker %d", i)
		}()
	}
	wg.Wait()

	if n := bytes.Count(buf.Bytes(), []byte("\n")); n != 10 {
		t.Errorf("expected 10 lines, got %d", n)
	}
}
