package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenQS/speed/internal/loader"
	"github.com/OpenQS/speed/internal/schema"
)

// SchemaOptions holds flags for the schema command.
type SchemaOptions struct {
	*RootOptions
	OutputPath string
	UIPath     string
}

// SchemaResult reports the files written by the schema command.
type SchemaResult struct {
	Path        string `json:"path"`
	UIPath      string `json:"ui_path,omitempty"`
	Fingerprint string `json:"fingerprint"`
}

func (r SchemaResult) String() string {
	s := fmt.Sprintf("✓ Wrote schema to %s (fingerprint %s)", r.Path, r.Fingerprint[:12])
	if r.UIPath != "" {
		s += fmt.Sprintf("\n✓ Wrote UI schema to %s", r.UIPath)
	}
	return s
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export the benchmark record JSON Schema",
		Long: `Export the JSON Schema (Draft 2020-12) describing a benchmark record.

The output is canonical: running the command twice produces identical bytes.
Use -o - to write the schema to stdout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", schema.DefaultFilename, "schema output path (- for stdout)")
	cmd.Flags().StringVar(&opts.UIPath, "ui-output", "", "also write the form UI schema to this path")

	return cmd
}

func runSchema(opts *SchemaOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := opts.Logger()

	data, err := schema.Export()
	if err != nil {
		return schemaFailure(formatter, loader.ErrCodeGeneric, "export failed", err)
	}
	fp, err := schema.Fingerprint()
	if err != nil {
		return schemaFailure(formatter, loader.ErrCodeGeneric, "fingerprint failed", err)
	}

	if opts.OutputPath == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(opts.OutputPath, data, 0o644); err != nil {
		return schemaFailure(formatter, loader.ErrCodeWriteFailed, "failed to write schema", err)
	}
	logger.Debug("wrote schema", "path", opts.OutputPath, "bytes", len(data))

	result := SchemaResult{Path: opts.OutputPath, Fingerprint: fp}
	if opts.UIPath != "" {
		ui, err := schema.ExportUI()
		if err != nil {
			return schemaFailure(formatter, loader.ErrCodeGeneric, "ui export failed", err)
		}
		if err := os.WriteFile(opts.UIPath, ui, 0o644); err != nil {
			return schemaFailure(formatter, loader.ErrCodeWriteFailed, "failed to write ui schema", err)
		}
		logger.Debug("wrote ui schema", "path", opts.UIPath, "bytes", len(ui))
		result.UIPath = opts.UIPath
	}

	return formatter.Success(result)
}

func schemaFailure(f *OutputFormatter, code, message string, err error) error {
	if outErr := f.Error(code, fmt.Sprintf("%s: %v", message, err), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, message, err)
}
