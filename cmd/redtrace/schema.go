package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"redtrace/internal/harfmt"
	"redtrace/internal/snapshot"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of exported HAR documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("failed to get output flag: %w", err)
		}
		indent, err := cmd.Flags().GetInt("indent")
		if err != nil {
			return fmt.Errorf("failed to get indent flag: %w", err)
		}
		data, err := harfmt.SchemaJSON(indent)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		if output == "" || output == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return snapshot.WriteAtomic(output, data)
	},
}

func init() {
	schemaCmd.Flags().StringP("output", "o", "", "write the schema to this file (default: stdout)")
	schemaCmd.Flags().Int("indent", harfmt.DefaultIndent, "spaces per indentation level, negative for compact output")
}
