package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REDTRACE_LANG", "REDTRACE_INDENT", "REDTRACE_JOBS", "REDTRACE_CREATOR_NAME",
		"REDTRACE_CREATOR_VERSION", "REDTRACE_TRACE_LEVEL", "REDTRACE_TRACE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg, err := Load(LoadOptions{Path: "", StartDir: dir, EnvFile: ""})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Lang != "en" || cfg.Export.Indent != 4 || cfg.Trace.Level != "off" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Creator.Name != "redtrace" || cfg.Export.Jobs < 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFindsFileUpwards(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[export]
lang = "en"
indent = 2
jobs = 3

[creator]
name = "probe"
version = "9.9.9"

[trace]
level = "phase"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{StartDir: nested})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Export.Indent != 2 || cfg.Export.Jobs != 3 || cfg.Creator.Name != "probe" || cfg.Trace.Level != "phase" {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, "[export]\nindent = 2\n\n[creator]\nname = \"probe\"\n")

	t.Setenv("REDTRACE_INDENT", "0")
	t.Setenv("REDTRACE_CREATOR_NAME", "from-env")

	cfg, err := Load(LoadOptions{Path: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Indent != 0 || cfg.Creator.Name != "from-env" {
		t.Errorf("env did not override file: %+v", cfg)
	}
	if opts := cfg.ExportOptions(); opts.Indent != -1 || opts.Creator.Name != "from-env" {
		t.Errorf("ExportOptions = %+v", opts)
	}
}

func TestEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	writeFile(t, envFile, "REDTRACE_CREATOR_VERSION=7.0.0\nREDTRACE_TRACE_LEVEL=detail\n")
	t.Cleanup(func() {
		os.Unsetenv("REDTRACE_CREATOR_VERSION")
		os.Unsetenv("REDTRACE_TRACE_LEVEL")
	})

	cfg, err := Load(LoadOptions{StartDir: dir, EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Creator.Version != "7.0.0" || cfg.Trace.Level != "detail" {
		t.Errorf("env file not applied: %+v", cfg)
	}

	if _, err := Load(LoadOptions{StartDir: dir, EnvFile: filepath.Join(dir, "missing.env")}); err == nil {
		t.Error("expected error for a missing explicit env file")
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{"bad toml", "[export\n", nil, "failed to parse TOML"},
		{"unknown key", "[export]\ncolour = \"red\"\n", nil, "unknown keys"},
		{"empty creator", "[creator]\nname = \"  \"\n", nil, "[creator].name"},
		{"bad language", "[export]\nlang = \"not a tag!\"\n", nil, "invalid export language"},
		{"indent range", "[export]\nindent = 40\n", nil, "out of range"},
		{"bad level", "[trace]\nlevel = \"loud\"\n", nil, "invalid trace level"},
		{"zero jobs", "[export]\njobs = 0\n", nil, "jobs must be positive"},
		{"bad env int", "", map[string]string{"REDTRACE_INDENT": "four"}, "REDTRACE_INDENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)

			_, err := Load(LoadOptions{Path: path})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
