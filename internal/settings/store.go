package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const credentialsKey = "azure"

// Store persists the credential set in a local SQLite key-value table. The
// access token is encrypted at rest with AES-GCM.
type Store struct {
	db            *sql.DB
	encryptionKey []byte
	mu            sync.RWMutex
}

// NewStore opens (or creates) the settings database at dbPath. The
// encryptionKey must be 16, 24, or 32 bytes.
func NewStore(dbPath string, encryptionKey []byte) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, encryptionKey: encryptionKey}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS settings (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	return nil
}

// Load reads the stored credential set. Absent or corrupt data degrades to
// empty credentials with a warning; it is never fatal.
func (s *Store) Load() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE name = ?", credentialsKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to read stored settings, using defaults")
		return Credentials{}
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		log.Warn().Err(err).Msg("stored settings are corrupt, using defaults")
		return Credentials{}
	}

	if creds.Token != "" {
		plaintext, err := decrypt(creds.Token, s.encryptionKey)
		if err != nil {
			log.Warn().Err(err).Msg("failed to decrypt stored token, using defaults")
			return Credentials{}
		}
		creds.Token = string(plaintext)
	}
	return creds
}

// Save overwrites the stored credential set wholesale.
func (s *Store) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	toStore := creds
	if toStore.Token != "" {
		encrypted, err := encrypt([]byte(toStore.Token), s.encryptionKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt token: %w", err)
		}
		toStore.Token = encrypted
	}

	value, err := json.Marshal(toStore)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO settings (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, credentialsKey, string(value))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
