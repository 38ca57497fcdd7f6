package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBPath(t *testing.T) {
	t.Setenv("CATALOGPIX_DB_PATH", "")
	assert.Equal(t, "catalogpix.db", DBPath())

	t.Setenv("CATALOGPIX_DB_PATH", "/tmp/custom.db")
	assert.Equal(t, "/tmp/custom.db", DBPath())
}

func TestSettingsPassphrase(t *testing.T) {
	t.Setenv("CATALOGPIX_SETTINGS_KEY", "")
	assert.Equal(t, "catalogpix-local", SettingsPassphrase())

	t.Setenv("CATALOGPIX_SETTINGS_KEY", "hunter2")
	assert.Equal(t, "hunter2", SettingsPassphrase())
}
