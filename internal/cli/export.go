package cli

import (
	"fmt"
	"os"
	"tarotstats/internal/export"
	"time"

	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export commands.
type ExportOptions struct {
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions, env *Env) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the local ledger as CSV",
		Long: `Write every row of the local ledger as CSV, most recently active first.

Without -o the file is named after today's local date. Use -o - for stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCSV(cmd, opts.Output, []byte(env.Service.Export()))
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (- for stdout)")
	return cmd
}

func writeCSV(cmd *cobra.Command, output string, data []byte) error {
	if output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if output == "" {
		output = export.Filename(time.Now())
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	return nil
}
