package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"redtrace/internal/trace"
)

func TestRingDumpPath(t *testing.T) {
	tests := []struct {
		mode   trace.StorageMode
		output string
		want   string
	}{
		{trace.ModeRing, "run.ndjson", "run.ndjson"},
		{trace.ModeRing, "", ""},
		{trace.ModeBoth, "run.ndjson", "run.ndjson.ring"},
		{trace.ModeBoth, "-", "-"},
		{trace.ModeBoth, "", ""},
	}
	for _, tt := range tests {
		if got := ringDumpPath(tt.mode, tt.output); got != tt.want {
			t.Errorf("ringDumpPath(%s, %q) = %q, want %q", tt.mode, tt.output, got, tt.want)
		}
	}
}

func TestDumpRingFromBothMode(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "run.ndjson")
	var stream bytes.Buffer
	tracer, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &stream, RingSize: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	trace.Begin(tracer, trace.ScopeExport, "file", 0).End("page1")

	ring := trace.RingOf(tracer)
	if ring == nil {
		t.Fatal("both mode lost its ring")
	}
	path := ringDumpPath(trace.ModeBoth, output)
	if err := dumpRing(ring, path); err != nil {
		t.Fatalf("dumpRing: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("ring dump holds %d lines, want 2:\n%s", got, data)
	}
	if stream.Len() == 0 {
		t.Error("stream half received nothing")
	}
}
