package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "speed", cmd.Use)
	assert.Contains(t, cmd.Long, "JSON Schema")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"schema", "validate", "add"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestSchemaCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	schemaCmd, _, err := cmd.Find([]string{"schema"})
	require.NoError(t, err)

	outputFlag := schemaCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "schema.json", outputFlag.DefValue)

	require.NotNil(t, schemaCmd.Flags().Lookup("ui-output"))
}

func TestAddCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	addCmd, _, err := cmd.Find([]string{"add"})
	require.NoError(t, err)

	dataDir := addCmd.Flags().Lookup("data-dir")
	require.NotNil(t, dataDir)
	assert.Equal(t, "data", dataDir.DefValue)
}

func TestInvalidFormatIsCommandError(t *testing.T) {
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--format", "xml", "schema", "-o", "-"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut.String(), `invalid format "xml"`)
	assert.Empty(t, out.String())
}

func TestVerboseEnablesDebugLogs(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, "r.json", validRecordJSON)

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"-v", "validate", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "level=DEBUG")
	assert.Contains(t, errOut.String(), "loaded record file")
}

func TestLoggerDefaultsToDiscard(t *testing.T) {
	opts := &RootOptions{}
	require.NotNil(t, opts.Logger())
}
