package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommandWithArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSettingsSetAndShow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	out, err := runCommandWithArgs(t,
		"settings", "set",
		"--db", dbPath,
		"--storage-url", "https://acct.blob.core.windows.net",
		"--container", "images",
		"--token", "?sv=2022&sig=supersecret",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved.")

	out, err = runCommandWithArgs(t, "settings", "show", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "https://acct.blob.core.windows.net")
	assert.Contains(t, out, "images")
	assert.NotContains(t, out, "sig=supersecret")
}

func TestSettingsSetRequiresAllFields(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	_, err := runCommandWithArgs(t,
		"settings", "set",
		"--db", dbPath,
		"--storage-url", "https://acct.blob.core.windows.net",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestSettingsShowUnconfigured(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	out, err := runCommandWithArgs(t, "settings", "show", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "not configured")
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("abcd"))
	assert.Equal(t, "?sv=********oken", maskToken("?sv=verylongtoken"))
	assert.Equal(t, "", maskToken(""))
}
