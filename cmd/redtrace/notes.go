package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"redtrace/internal/diag"
)

var notesCmd = &cobra.Command{
	Use:   "notes [flags] [NAME...]",
	Short: "List the note definitions the analyzer can emit",
	RunE:  runNotes,
}

func init() {
	notesCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	notesCmd.Flags().String("lang", "", "language of the templates (default from config)")
	notesCmd.Flags().Bool("long", false, "include the long HTML text")
	notesCmd.Flags().String("category", "", "only list notes of this category")
	notesCmd.Flags().String("severity", "", "only list notes of this severity (good|bad|info)")
}

// noteRecord is one registry entry as listed by the notes command.
type noteRecord struct {
	Name     string `json:"name" yaml:"name"`
	ID       string `json:"id" yaml:"id"`
	Category string `json:"category" yaml:"category"`
	Severity string `json:"severity" yaml:"severity"`
	Summary  string `json:"summary" yaml:"summary"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
}

type noteFilter struct {
	names    []string
	category string
	severity string
}

func runNotes(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	long, err := cmd.Flags().GetBool("long")
	if err != nil {
		return fmt.Errorf("failed to get long flag: %w", err)
	}
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return fmt.Errorf("failed to get category flag: %w", err)
	}
	severity, err := cmd.Flags().GetString("severity")
	if err != nil {
		return fmt.Errorf("failed to get severity flag: %w", err)
	}

	if lang == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lang = cfg.Export.Lang
	}

	records, err := collectNotes(diag.Default(), lang, long, noteFilter{names: args, category: category, severity: severity})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		renderNotesPretty(out, records, long)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", format)
	}
}

// collectNotes returns the matching definitions in code order with their
// templates for lang. Unknown names are an error.
func collectNotes(reg *diag.Registry, lang string, long bool, f noteFilter) ([]noteRecord, error) {
	var wantCat *diag.Category
	if f.category != "" {
		c, err := diag.ParseCategory(f.category)
		if err != nil {
			return nil, err
		}
		wantCat = &c
	}
	var wantSev *diag.Severity
	if f.severity != "" {
		s, err := diag.ParseSeverity(f.severity)
		if err != nil {
			return nil, err
		}
		wantSev = &s
	}

	codes := reg.Codes()
	if len(f.names) > 0 {
		codes = codes[:0]
		for _, name := range f.names {
			d, ok := reg.LookupName(strings.ToUpper(strings.TrimSpace(name)))
			if !ok {
				return nil, fmt.Errorf("unknown note %q", name)
			}
			codes = append(codes, d.Code)
		}
	}

	records := make([]noteRecord, 0, len(codes))
	for _, code := range codes {
		d, _ := reg.Lookup(code)
		if wantCat != nil && d.Category != *wantCat {
			continue
		}
		if wantSev != nil && d.Severity != *wantSev {
			continue
		}
		summary, text, err := reg.Templates(code, lang)
		if err != nil {
			return nil, err
		}
		rec := noteRecord{
			Name:     code.Name(),
			ID:       code.ID(),
			Category: d.Category.String(),
			Severity: d.Severity.String(),
			Summary:  summary,
		}
		if long {
			rec.Text = text
		}
		records = append(records, rec)
	}
	return records, nil
}

func renderNotesPretty(w io.Writer, records []noteRecord, long bool) {
	nameWidth := 0
	for _, r := range records {
		if n := runewidth.StringWidth(r.Name); n > nameWidth {
			nameWidth = n
		}
	}
	dim := color.New(color.Faint)
	for _, r := range records {
		sev := severityColor(r.Severity).Sprintf("%-4s", r.Severity)
		fmt.Fprintf(w, "%s %s %s  %s\n",
			dim.Sprint(r.ID),
			sev,
			runewidth.FillRight(r.Name, nameWidth),
			r.Summary)
		if long && r.Text != "" {
			for _, line := range strings.Split(strings.TrimSpace(r.Text), "\n") {
				fmt.Fprintf(w, "        %s\n", dim.Sprint(strings.TrimSpace(line)))
			}
		}
	}
	fmt.Fprintf(w, "%d notes\n", len(records))
}

func severityColor(sev string) *color.Color {
	switch sev {
	case "good":
		return color.New(color.FgGreen)
	case "bad":
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
