package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRootCommandFlags tests that all expected CLI flags are present
func TestRootCommandFlags(t *testing.T) {
	configFlag := rootCmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, configFlag)
	assert.Equal(t, "string", configFlag.Value.Type())
	assert.Equal(t, "c", configFlag.Shorthand)

	serverFlag := rootCmd.PersistentFlags().Lookup("server")
	assert.NotNil(t, serverFlag)
	assert.Equal(t, "string", serverFlag.Value.Type())
	assert.Equal(t, "s", serverFlag.Shorthand)

	logLevelFlag := rootCmd.PersistentFlags().Lookup("log-level")
	assert.NotNil(t, logLevelFlag)
	assert.Equal(t, "string", logLevelFlag.Value.Type())
}

// TestFlagDefaults tests default values of CLI flags
func TestFlagDefaults(t *testing.T) {
	configFlag := rootCmd.PersistentFlags().Lookup("config")
	assert.Equal(t, "", configFlag.DefValue)

	serverFlag := rootCmd.PersistentFlags().Lookup("server")
	assert.Equal(t, "", serverFlag.DefValue)

	logLevelFlag := rootCmd.PersistentFlags().Lookup("log-level")
	assert.Equal(t, "", logLevelFlag.DefValue)
}

// TestSubcommandsRegistered tests that the headless commands are wired
// onto the root command
func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["send"], "send command should be registered")
	assert.True(t, names["history"], "history command should be registered")
	assert.True(t, names["clear"], "clear command should be registered")
	assert.True(t, names["files"], "files command should be registered")
}

func TestSendCommandAttachFlag(t *testing.T) {
	attachFlag := sendCmd.Flags().Lookup("attach")
	assert.NotNil(t, attachFlag)
	assert.Equal(t, "stringArray", attachFlag.Value.Type())
	assert.Equal(t, "a", attachFlag.Shorthand)
}
