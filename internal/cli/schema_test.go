package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenQS/speed/internal/schema"
)

func TestSchemaWritesFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	uiPath := filepath.Join(dir, "uischema.json")

	out, _, err := runCommand(t, &RootOptions{Format: "text"}, NewSchemaCommand, "-o", schemaPath, "--ui-output", uiPath)
	require.NoError(t, err)

	want, err := schema.Export()
	require.NoError(t, err)
	got, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	wantUI, err := schema.ExportUI()
	require.NoError(t, err)
	gotUI, err := os.ReadFile(uiPath)
	require.NoError(t, err)
	assert.Equal(t, wantUI, gotUI)

	assert.Contains(t, out, "✓ Wrote schema to "+schemaPath)
	assert.Contains(t, out, "✓ Wrote UI schema to "+uiPath)
}

func TestSchemaIsReproducible(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	_, _, err := runCommand(t, &RootOptions{Format: "text"}, NewSchemaCommand, "-o", first)
	require.NoError(t, err)
	_, _, err = runCommand(t, &RootOptions{Format: "text"}, NewSchemaCommand, "-o", second)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSchemaJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")

	out, _, err := runCommand(t, &RootOptions{Format: "json"}, NewSchemaCommand, "-o", path)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   SchemaResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, path, resp.Data.Path)
	assert.Empty(t, resp.Data.UIPath)

	fp, err := schema.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, resp.Data.Fingerprint)
}

func TestSchemaToStdout(t *testing.T) {
	out, _, err := runCommand(t, &RootOptions{Format: "text"}, NewSchemaCommand, "-o", "-")
	require.NoError(t, err)

	want, err := schema.Export()
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestSchemaWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "schema.json")

	out, _, err := runCommand(t, &RootOptions{Format: "text"}, NewSchemaCommand, "-o", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E007]")
}

func TestSchemaRejectsArgs(t *testing.T) {
	_, _, err := runCommand(t, &RootOptions{Format: "text"}, NewSchemaCommand, "extra")
	require.Error(t, err)
}
