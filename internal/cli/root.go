package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Logger returns the logger installed by the root command. Subcommands built
// on their own (as in tests) get a logger that discards everything.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// NewRootCommand creates the root command for the speed CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "speed",
		Short: "speed - quantum many-body benchmark records",
		Long: `Validate and store benchmark records of quantum many-body simulations,
and export the JSON Schema that describes them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", msg)
				return NewExitError(ExitCommandError, msg)
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
