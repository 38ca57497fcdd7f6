package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	AppName     = "catalogpix"
	EnvFileName = "config.env"

	envDBPath      = "CATALOGPIX_DB_PATH"
	envSettingsKey = "CATALOGPIX_SETTINGS_KEY"

	defaultDBFile             = "catalogpix.db"
	defaultSettingsPassphrase = "catalogpix-local"
)

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// DBPath returns the settings database path, honoring CATALOGPIX_DB_PATH.
func DBPath() string {
	if p := os.Getenv(envDBPath); p != "" {
		return p
	}
	return defaultDBFile
}

// SettingsPassphrase returns the passphrase the stored access token is
// encrypted with, honoring CATALOGPIX_SETTINGS_KEY.
func SettingsPassphrase() string {
	if k := os.Getenv(envSettingsKey); k != "" {
		return k
	}
	return defaultSettingsPassphrase
}
