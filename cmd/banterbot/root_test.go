package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Properties(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "banterbot", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Short, "command router")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expectedCommands := []string{
		"start",
		"status",
		"version",
	}

	subcommandNames := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		subcommandNames[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		assert.True(t, subcommandNames[expected], "missing subcommand: %s", expected)
	}
}

func TestAllCommands_HaveUsage(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		assert.NotEmpty(t, cmd.Use, "command %s should have usage", cmd.Name())
		assert.NotEmpty(t, cmd.Short, "command %s should have short description", cmd.Name())
	}
}

func TestStartCommand_HasConfigFlag(t *testing.T) {
	flag := startCmd.Flags().Lookup("config")
	require.NotNil(t, flag, "start command should have config flag")
	assert.Equal(t, "config.yaml", flag.DefValue)
}

func TestVersionCommand_Output(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "banterbot")
	assert.Contains(t, out.String(), Version)
	assert.Contains(t, out.String(), GitCommit)
}
