package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"redtrace/internal/diag"
	"redtrace/internal/harfmt"
	"redtrace/internal/pipeline"
	"redtrace/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <snapshot>...",
	Short: "Export transaction snapshots as HAR documents",
	Long: `Export reads analyzed transaction snapshots (.json, .yaml or .msgpack) and
writes one HAR document per snapshot. A single snapshot goes to stdout or to
the file named by --output; several snapshots need --output to be a directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file, or directory for several inputs (default: stdout)")
	exportCmd.Flags().String("lang", "", "language of rendered note summaries (overrides config)")
	exportCmd.Flags().Int("indent", -1, "spaces per indentation level, 0 for compact output (overrides config)")
	exportCmd.Flags().Int("jobs", 0, "parallel exports (overrides config)")
	exportCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	exportCmd.Flags().Bool("quiet", false, "suppress the per-file summary")
}

// exportTarget says where archives go.
type exportTarget struct {
	outDir   string
	outFile  string
	toStdout bool
}

// resolveTarget maps --output onto a directory, a single file or stdout.
func resolveTarget(output string, inputs int) (exportTarget, error) {
	if output == "" || output == "-" {
		if inputs > 1 {
			return exportTarget{}, fmt.Errorf("%d inputs need --output to name a directory", inputs)
		}
		return exportTarget{toStdout: true}, nil
	}
	info, err := os.Stat(output)
	switch {
	case err == nil && info.IsDir():
		return exportTarget{outDir: output}, nil
	case err == nil && inputs > 1:
		return exportTarget{}, fmt.Errorf("%s is not a directory", output)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return exportTarget{}, err
	}
	if inputs > 1 {
		return exportTarget{outDir: output}, nil
	}
	return exportTarget{outFile: output}, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("lang") {
		if cfg.Export.Lang, err = cmd.Flags().GetString("lang"); err != nil {
			return fmt.Errorf("failed to get lang flag: %w", err)
		}
	}
	if cmd.Flags().Changed("indent") {
		if cfg.Export.Indent, err = cmd.Flags().GetInt("indent"); err != nil {
			return fmt.Errorf("failed to get indent flag: %w", err)
		}
	}
	if cmd.Flags().Changed("jobs") {
		if cfg.Export.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	target, err := resolveTarget(output, len(args))
	if err != nil {
		return err
	}

	counters := &pipeline.Counters{}
	cleanup, err := setupTracing(cmd, cfg, counters.Status)
	if err != nil {
		return err
	}
	defer cleanup()

	reg := diag.Default()
	req := &pipeline.ExportRequest{
		Files:    args,
		Exporter: harfmt.NewExporter(reg, cfg.ExportOptions()),
		Registry: reg,
		OutDir:   target.outDir,
		Jobs:     cfg.Export.Jobs,
		Counters: counters,
	}
	var buf bytes.Buffer
	switch {
	case target.toStdout:
		req.Output = cmd.OutOrStdout()
	case target.outFile != "":
		req.Output = &buf
	}

	var result pipeline.ExportResult
	if shouldUseTUI(mode, target.toStdout) {
		result, err = runExportWithUI(cmd.Context(), "exporting", req)
		quiet = true
	} else {
		result, err = pipeline.Export(cmd.Context(), req)
	}
	if err == nil && target.outFile != "" {
		if err = snapshot.WriteAtomic(target.outFile, buf.Bytes()); err == nil {
			result.Files[0].Output = target.outFile
		}
	}

	if !quiet {
		printExportSummary(cmd.ErrOrStderr(), result)
	}
	return err
}

func printExportSummary(w io.Writer, result pipeline.ExportResult) {
	okStyle := color.New(color.FgGreen, color.Bold)
	errStyle := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	for _, f := range result.Files {
		name := filepath.Clean(f.File)
		if f.Err != nil {
			fmt.Fprintf(w, "%s %s\n", errStyle.Sprint("failed"), name)
			continue
		}
		dest := f.Output
		if dest == "" {
			dest = "stdout"
		}
		fmt.Fprintf(w, "%s %s -> %s %s\n", okStyle.Sprint("wrote"), name, dest,
			dim.Sprintf("(%s, %d entries, %d problems)", f.PageID, f.Entries, f.Problems))
	}
	if failed := result.Failed(); failed > 0 {
		fmt.Fprintf(w, "%s\n", errStyle.Sprintf("%d of %d snapshots failed", failed, len(result.Files)))
	}
}
