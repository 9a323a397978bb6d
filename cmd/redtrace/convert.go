package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"redtrace/internal/diag"
	"redtrace/internal/snapshot"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Re-encode a snapshot between JSON, YAML and msgpack",
	Long: `Convert reads a snapshot and writes it in the format implied by the output
extension (.json, .yaml/.yml, .msgpack/.mp). The snapshot is resolved against
the note registry first, so a converted file is always exportable.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convertSnapshot(args[0], args[1], diag.Default())
	},
}

func convertSnapshot(in, out string, reg *diag.Registry) error {
	if _, err := snapshot.FormatFromPath(out); err != nil {
		return err
	}
	doc, err := snapshot.ReadFile(in)
	if err != nil {
		return err
	}
	if _, err := doc.Resolve(reg); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	return snapshot.WriteFile(out, doc)
}
