package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"redtrace/internal/pipeline"
	"redtrace/internal/snapshot"
)

func TestResolveTarget(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "out")
	existing := filepath.Join(dir, "existing.har")
	if err := os.WriteFile(existing, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		output  string
		inputs  int
		want    exportTarget
		wantErr bool
	}{
		{"stdout", "", 1, exportTarget{toStdout: true}, false},
		{"dash", "-", 1, exportTarget{toStdout: true}, false},
		{"stdout with several inputs", "", 2, exportTarget{}, true},
		{"existing dir", dir, 1, exportTarget{outDir: dir}, false},
		{"new file", missing + ".har", 1, exportTarget{outFile: missing + ".har"}, false},
		{"new dir for several inputs", missing, 3, exportTarget{outDir: missing}, false},
		{"existing file replaced", existing, 1, exportTarget{outFile: existing}, false},
		{"existing file for several inputs", existing, 2, exportTarget{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTarget(tt.output, tt.inputs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPrintExportSummary(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	result := pipeline.ExportResult{Files: []pipeline.FileResult{
		{File: "a.json", Output: "out/a.har", PageID: "page1", Entries: 2, Problems: 3},
		{File: "b.json", Err: os.ErrNotExist},
	}}
	var buf bytes.Buffer
	printExportSummary(&buf, result)
	got := buf.String()
	for _, want := range []string{
		"wrote a.json -> out/a.har (page1, 2 entries, 3 problems)",
		"failed b.json",
		"1 of 2 snapshots failed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func sampleSnapshot() *snapshot.Document {
	sub := 0
	return &snapshot.Document{Root: &snapshot.Transaction{
		Method: "GET", URI: "http://example.com/", Version: "1.1",
		ReqTS: 1300000000, ResTS: 1300000000.1, ResDoneTS: 1300000000.2,
		ReqHeaders: []snapshot.Header{{"Host", "example.com"}},
		Status:     200, Phrase: "OK",
		ResHeaders: []snapshot.Header{{"Content-Type", "text/plain"}},
		BodyLen:    10, BodyDecodedLen: 10,
		Notes: []snapshot.Note{
			{Code: "INM_FULL", Subject: "header-etag", Subrequest: &sub},
		},
		Linked: []*snapshot.Transaction{{
			Method: "GET", URI: "http://example.com/", Version: "1.1",
			ReqTS: 1300000001, ResTS: 1300000001.1, ResDoneTS: 1300000001.2,
			Status: 304, Phrase: "Not Modified",
			Notes: []snapshot.Note{{Code: "INM_FULL", Subject: "header-etag"}},
		}},
	}}
}
