package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenQS/speed/internal/dataset"
	"github.com/OpenQS/speed/internal/loader"
	"github.com/OpenQS/speed/internal/model"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	DataDir string

	// IDs overrides record ID generation; tests pin it.
	IDs dataset.IDGenerator
}

// AddResult reports a stored record.
type AddResult struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
}

func (r AddResult) String() string {
	return fmt.Sprintf("✓ Stored record %s at %s", r.ID, r.Path)
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Validate a record and add it to the dataset",
		Long: `Validate a benchmark record and store it in the dataset directory as
<id>.json, where <id> is a time-ordered UUID.

A record identical to one already stored is rejected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DataDir, "data-dir", "data", "dataset directory")

	return cmd
}

func runAdd(opts *AddOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := opts.Logger()

	doc, err := loader.New(loader.WithLogger(logger)).LoadFile(path)
	if err != nil {
		var loadErr *loader.LoadError
		code := loader.ErrCodeGeneric
		if errors.As(err, &loadErr) {
			code = loadErr.Code
		}
		if outErr := formatter.Error(code, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "load failed", err)
	}

	dirOpts := []dataset.Option{dataset.WithLogger(logger)}
	if opts.IDs != nil {
		dirOpts = append(dirOpts, dataset.WithIDGenerator(opts.IDs))
	}
	dir, err := dataset.Open(opts.DataDir, dirOpts...)
	if err != nil {
		if outErr := formatter.Error(loader.ErrCodeWriteFailed, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "open dataset", err)
	}

	entry, err := dir.Add(cmd.Context(), doc.Value)
	var verr model.Errors
	switch {
	case err == nil:
	case errors.As(err, &verr):
		issues := issueViews(verr)
		message := fmt.Sprintf("%s: invalid record", path)
		if formatter.Format == "json" {
			if outErr := formatter.Error(issues[0].Code, message, issues); outErr != nil {
				return outErr
			}
		} else {
			var b strings.Builder
			fmt.Fprintf(&b, "✗ %s\n", path)
			writeIssues(&b, issues)
			fmt.Fprint(formatter.Writer, b.String())
		}
		return WrapExitError(ExitFailure, message, err)
	case errors.Is(err, dataset.ErrDuplicate):
		if outErr := formatter.Error(loader.ErrCodeDuplicate, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "duplicate record", err)
	default:
		if outErr := formatter.Error(loader.ErrCodeWriteFailed, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "store failed", err)
	}

	if !model.IsKnownArchitecture(entry.Record.Architecture) {
		formatter.VerboseLog("warning: architecture %q is not a known label", entry.Record.Architecture)
	}
	return formatter.Success(AddResult{ID: entry.ID, Path: entry.Path, Fingerprint: entry.Fingerprint})
}
