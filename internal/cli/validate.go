package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenQS/speed/internal/loader"
	"github.com/OpenQS/speed/internal/model"
)

// FileResult is the validation outcome of one record file.
type FileResult struct {
	Path        string      `json:"path"`
	Valid       bool        `json:"valid"`
	Fingerprint string      `json:"fingerprint,omitempty"`
	Issues      []IssueView `json:"issues,omitempty"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// ValidationReport holds the results of a validate run.
type ValidationReport struct {
	Files   []FileResult `json:"files"`
	Invalid int          `json:"invalid"`
}

func (r ValidationReport) String() string {
	var b strings.Builder
	for _, f := range r.Files {
		if f.Valid {
			fmt.Fprintf(&b, "✓ %s\n", f.Path)
			continue
		}
		fmt.Fprintf(&b, "✗ %s\n", f.Path)
		writeIssues(&b, f.Issues)
	}
	if r.Invalid == 0 {
		fmt.Fprintf(&b, "✓ All %d record(s) valid", len(r.Files))
	} else {
		fmt.Fprintf(&b, "%d of %d record(s) invalid", r.Invalid, len(r.Files))
	}
	return b.String()
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate benchmark record files",
		Long: `Validate benchmark record files (.json, .yaml, .yml, .cue).

Directories are searched recursively. Every problem in a record is reported,
not just the first. Exits 1 if any record is invalid and 2 if a file cannot
be read or decoded.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ld := loader.New(loader.WithLogger(opts.Logger()))

	var (
		report     ValidationReport
		loadFailed bool
	)
	ld.Walk(cmd.Context(), paths, func(doc loader.Document, err error) {
		if err != nil {
			loadFailed = true
			report.Files = append(report.Files, loadFailure(err))
			return
		}
		result := validateDocument(doc)
		for _, w := range result.Warnings {
			formatter.VerboseLog("warning: %s: %s", doc.Path, w)
		}
		report.Files = append(report.Files, result)
	})
	for _, f := range report.Files {
		if !f.Valid {
			report.Invalid++
		}
	}

	if report.Invalid == 0 {
		return formatter.Success(report)
	}

	code := firstCode(report)
	message := fmt.Sprintf("%d of %d record(s) invalid", report.Invalid, len(report.Files))
	if formatter.Format == "json" {
		if err := formatter.Error(code, message, report); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, report)
	}

	if loadFailed {
		return NewExitError(ExitCommandError, fmt.Sprintf("[%s] %s", code, message))
	}
	return NewExitError(ExitFailure, fmt.Sprintf("[%s] %s", code, message))
}

func validateDocument(doc loader.Document) FileResult {
	result := FileResult{Path: doc.Path}

	rec, err := model.Parse(doc.Value)
	if err != nil {
		var verr model.Errors
		if errors.As(err, &verr) {
			result.Issues = issueViews(verr)
		} else {
			result.Issues = []IssueView{{Code: loader.ErrCodeGeneric, Message: err.Error()}}
		}
		return result
	}

	result.Valid = true
	if fp, err := rec.Fingerprint(); err == nil {
		result.Fingerprint = fp
	}
	if !model.IsKnownArchitecture(rec.Architecture) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("architecture %q is not a known label", rec.Architecture))
	}
	return result
}

func loadFailure(err error) FileResult {
	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) {
		return FileResult{
			Path:   loadErr.Path,
			Issues: []IssueView{{Code: loadErr.Code, Message: loadErr.Message}},
		}
	}
	return FileResult{Issues: []IssueView{{Code: loader.ErrCodeGeneric, Message: err.Error()}}}
}

func firstCode(report ValidationReport) string {
	for _, f := range report.Files {
		if !f.Valid && len(f.Issues) > 0 {
			return f.Issues[0].Code
		}
	}
	return loader.ErrCodeGeneric
}
