// Package statestore persists the client's durable state: the bearer token
// (encrypted at rest) and the current library selection. The token is a
// single slot with last-write-wins semantics between login and logout.
package statestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shelfmate/shelfmate/internal/crypto"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// EnvEncryptionKey is the environment variable for the encryption key
	EnvEncryptionKey = "SHELFMATE_STATE_KEY"

	// DefaultKeyFileName is the default name for the key file
	DefaultKeyFileName = ".shelfmate-state-key"

	slotToken          = "auth_token"
	slotCurrentLibrary = "current_library_id"
)

// slot is one persisted key/value entry
type slot struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

func (slot) TableName() string { return "client_state" }

// Store provides persistent client state backed by a local SQLite database
type Store struct {
	db     *gorm.DB
	sealer *crypto.Sealer

	mu    sync.RWMutex
	token string
}

// Config holds configuration for the state store
type Config struct {
	// DatabasePath is the path to the SQLite database file
	DatabasePath string

	// EncryptionKey is the base64-encoded 32-byte encryption key.
	// If empty, will try to load from environment or key file.
	EncryptionKey string

	// KeyFilePath is the path to the encryption key file.
	// If empty, defaults to ~/.shelfmate-state-key.
	KeyFilePath string
}

// New opens (creating if needed) the state database and loads the stored token
func New(cfg Config) (*Store, error) {
	key, err := resolveEncryptionKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve encryption key: %w", err)
	}

	sealer, err := crypto.NewSealer(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create sealer: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	s := &Store{db: db, sealer: sealer}
	if err := s.loadToken(); err != nil {
		return nil, err
	}
	return s, nil
}

// resolveEncryptionKey determines the encryption key from various sources
func resolveEncryptionKey(cfg Config) (string, error) {
	if cfg.EncryptionKey != "" {
		return cfg.EncryptionKey, nil
	}

	if envKey := os.Getenv(EnvEncryptionKey); envKey != "" {
		return envKey, nil
	}

	keyFilePath := cfg.KeyFilePath
	if keyFilePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		keyFilePath = filepath.Join(homeDir, DefaultKeyFileName)
	}

	if data, err := os.ReadFile(keyFilePath); err == nil {
		return string(data), nil
	}

	newKey, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate encryption key: %w", err)
	}

	if err := os.WriteFile(keyFilePath, []byte(newKey), 0600); err != nil {
		return "", fmt.Errorf("failed to save encryption key to %s: %w", keyFilePath, err)
	}

	return newKey, nil
}

func (s *Store) loadToken() error {
	sealed, err := s.getSlot(slotToken)
	if err != nil {
		return err
	}
	token, err := s.sealer.Open(sealed)
	if err != nil {
		// An undecryptable slot (rotated key) is treated as no token
		token = ""
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Token returns the stored bearer token, or "" when unauthenticated.
// Implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SaveToken persists the bearer token, sealed
func (s *Store) SaveToken(token string) error {
	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}
	if err := s.setSlot(slotToken, sealed); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// ClearToken removes the stored token
func (s *Store) ClearToken() error {
	if err := s.deleteSlot(slotToken); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

// CurrentLibrary returns the persisted library selection, or ""
func (s *Store) CurrentLibrary() (string, error) {
	return s.getSlot(slotCurrentLibrary)
}

// SaveCurrentLibrary persists the library selection
func (s *Store) SaveCurrentLibrary(libraryID string) error {
	return s.setSlot(slotCurrentLibrary, libraryID)
}

// ClearCurrentLibrary removes the persisted library selection
func (s *Store) ClearCurrentLibrary() error {
	return s.deleteSlot(slotCurrentLibrary)
}

func (s *Store) getSlot(key string) (string, error) {
	var entry slot
	result := s.db.Where("key = ?", key).First(&entry)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", key, result.Error)
	}
	return entry.Value, nil
}

func (s *Store) setSlot(key, value string) error {
	entry := slot{Key: key, Value: value, UpdatedAt: time.Now()}
	result := s.db.Where("key = ?", key).
		Assign(map[string]interface{}{"value": value, "updated_at": entry.UpdatedAt}).
		FirstOrCreate(&entry)
	if result.Error != nil {
		return fmt.Errorf("failed to save %s: %w", key, result.Error)
	}
	return nil
}

func (s *Store) deleteSlot(key string) error {
	result := s.db.Where("key = ?", key).Delete(&slot{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", key, result.Error)
	}
	return nil
}

// Ping checks the database connection is still usable
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
