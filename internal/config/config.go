// Package config loads redtrace settings from redtrace.toml, a .env file and
// REDTRACE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"redtrace/internal/harfmt"
	"redtrace/internal/trace"
	"redtrace/internal/version"
)

// FileName is the name of the project config file.
const FileName = "redtrace.toml"

// Config is the merged configuration.
type Config struct {
	// Path is the config file that was read, empty when none was found.
	Path string `toml:"-"`

	Export  ExportConfig  `toml:"export"`
	Creator CreatorConfig `toml:"creator"`
	Trace   TraceConfig   `toml:"trace"`
}

type ExportConfig struct {
	Lang   string `toml:"lang"`
	Indent int    `toml:"indent"` // spaces per level, 0 for compact output
	Jobs   int    `toml:"jobs"`
}

type CreatorConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Export: ExportConfig{
			Lang:   harfmt.DefaultLang,
			Indent: harfmt.DefaultIndent,
			Jobs:   runtime.NumCPU(),
		},
		Creator: CreatorConfig{
			Name:    version.Tool,
			Version: version.Current(),
		},
		Trace: TraceConfig{Level: "off"},
	}
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// Path is an explicit config file; it must exist.
	Path string
	// StartDir is where the upward search for FileName begins when Path is empty.
	StartDir string
	// EnvFile is an explicit dotenv file; it must exist. Without it ".env" is
	// loaded when present.
	EnvFile string
}

// Load merges defaults, the config file and the environment.
func Load(opts LoadOptions) (Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load(".env")
	}

	cfg := Default()

	path := opts.Path
	if path == "" {
		found, ok, err := Find(opts.StartDir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
		cfg.Path = path
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("creator", "name") && strings.TrimSpace(cfg.Creator.Name) == "" {
		return fmt.Errorf("%s: [creator].name must not be empty", path)
	}
	if meta.IsDefined("export", "lang") && strings.TrimSpace(cfg.Export.Lang) == "" {
		return fmt.Errorf("%s: [export].lang must not be empty", path)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Export.Lang = getEnv("REDTRACE_LANG", cfg.Export.Lang)
	cfg.Creator.Name = getEnv("REDTRACE_CREATOR_NAME", cfg.Creator.Name)
	cfg.Creator.Version = getEnv("REDTRACE_CREATOR_VERSION", cfg.Creator.Version)
	cfg.Trace.Level = getEnv("REDTRACE_TRACE_LEVEL", cfg.Trace.Level)
	cfg.Trace.Output = getEnv("REDTRACE_TRACE", cfg.Trace.Output)

	var err error
	if cfg.Export.Indent, err = getEnvInt("REDTRACE_INDENT", cfg.Export.Indent); err != nil {
		return err
	}
	if cfg.Export.Jobs, err = getEnvInt("REDTRACE_JOBS", cfg.Export.Jobs); err != nil {
		return err
	}
	return nil
}

// Validate checks value ranges and syntax.
func (c Config) Validate() error {
	if _, err := language.Parse(c.Export.Lang); err != nil {
		return fmt.Errorf("invalid export language %q: %w", c.Export.Lang, err)
	}
	if c.Export.Indent < 0 || c.Export.Indent > 16 {
		return fmt.Errorf("export indent %d out of range (0..16)", c.Export.Indent)
	}
	if c.Export.Jobs < 1 {
		return fmt.Errorf("export jobs must be positive, got %d", c.Export.Jobs)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return err
	}
	return nil
}

// ExportOptions converts the settings into exporter options.
func (c Config) ExportOptions() harfmt.Options {
	indent := c.Export.Indent
	if indent == 0 {
		indent = -1
	}
	return harfmt.Options{
		Lang:    c.Export.Lang,
		Indent:  indent,
		Creator: harfmt.Creator{Name: c.Creator.Name, Version: c.Creator.Version},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
