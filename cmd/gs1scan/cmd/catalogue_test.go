package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCatalogue executes the catalogue subcommand with the given args.
func runCatalogue(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"catalogue"}, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCatalogueCommand_Table(t *testing.T) {
	output, err := runCatalogue(t, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, output, "AI")
	assert.Contains(t, output, "TITLE")
	assert.Contains(t, output, "GTIN")
	assert.Contains(t, output, "definition(s)")
}

func TestCatalogueCommand_CodeFilter(t *testing.T) {
	output, err := runCatalogue(t, "--format", "text", "--code", "01")
	require.NoError(t, err)

	assert.Contains(t, output, "01")
	assert.Contains(t, output, "1 definition(s)")

	require.NoError(t, catalogueCmd.Flags().Set("code", ""))
}

func TestCatalogueCommand_UnknownCode(t *testing.T) {
	_, err := runCatalogue(t, "--format", "text", "--code", "0000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown AI code")

	require.NoError(t, catalogueCmd.Flags().Set("code", ""))
}

func TestCatalogueCommand_JSON(t *testing.T) {
	output, err := runCatalogue(t, "--format", "json", "--code", "3103")
	require.NoError(t, err)

	var defs []gs1.Definition
	require.NoError(t, json.Unmarshal([]byte(output), &defs))
	require.Len(t, defs, 1)
	assert.Equal(t, "3103", defs[0].Code)
	assert.Equal(t, 3, defs[0].Decimals)

	require.NoError(t, catalogueCmd.Flags().Set("code", ""))
}
