package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(AddResult{ID: "rec-1", Path: "data/rec-1.json", Fingerprint: "abc"})
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   AddResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "rec-1", resp.Data.ID)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E005", "path not found", nil)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "path not found", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := []IssueView{{Path: "N", Code: "E204", Message: "N must fit in signed 32-bit integer"}}
	require.NoError(t, formatter.Error("E204", "invalid record", details))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success(AddResult{ID: "rec-1", Path: "data/rec-1.json"}))
	assert.Equal(t, "✓ Stored record rec-1 at data/rec-1.json\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error("E008", "record already in dataset", "matches rec-1"))
			assert.Contains(t, buf.String(), "Error [E008]: record already in dataset")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details: matches rec-1")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("loading %s", "r.json")

			assert.Empty(t, out.String(), "diagnostics never go to the JSON stream")
			if tt.wantLog {
				assert.Equal(t, "loading r.json\n", errOut.String())
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestGetErrWriterFallsBack(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Writer: buf}
	assert.Same(t, buf, formatter.GetErrWriter())
}

func TestGetExitCode(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", base, ExitFailure},
		{"failure", NewExitError(ExitFailure, "invalid"), ExitFailure},
		{"command error", WrapExitError(ExitCommandError, "load failed", base), ExitCommandError},
		{"wrapped", fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "x")), ExitCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	base := errors.New("permission denied")
	err := WrapExitError(ExitCommandError, "failed to write schema", base)
	assert.Equal(t, "failed to write schema: permission denied", err.Error())
	assert.ErrorIs(t, err, base)

	assert.Equal(t, "invalid", NewExitError(ExitFailure, "invalid").Error())
}
