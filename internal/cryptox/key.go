package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// LoadKey sources the process-wide encryption key. Order:
//
//  1. the base64-encoded value passed in envKey (from the SECRET_KEY
//     environment variable),
//  2. the key file at keyFile,
//  3. a freshly generated key, persisted to keyFile.
//
// The key is read-only after startup; rotating it invalidates every
// previously encrypted field.
func LoadKey(envKey, keyFile string) ([]byte, error) {
	if envKey != "" {
		key, err := KeyFromBase64(envKey)
		if err != nil {
			return nil, fmt.Errorf("invalid SECRET_KEY: %w", err)
		}
		return key, nil
	}

	if data, err := os.ReadFile(keyFile); err == nil {
		key, err := KeyFromBase64(string(data))
		if err != nil {
			return nil, fmt.Errorf("invalid key file %s: %w", keyFile, err)
		}
		return key, nil
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(keyFile, []byte(KeyToBase64(key)), 0600); err != nil {
		return nil, fmt.Errorf("failed to write key file %s: %w", keyFile, err)
	}

	slog.Warn("new secret key generated and saved to file; move it into the environment and delete the file",
		slog.String("file", keyFile),
		slog.String("env_var", "SECRET_KEY"))

	return key, nil
}

// GenerateKey generates a secure 32-byte encryption key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}
	return key, nil
}

// KeyFromBase64 converts a base64-encoded key to bytes.
func KeyFromBase64(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d bytes", KeySize, len(key))
	}
	return key, nil
}

// KeyToBase64 converts a key to base64 for storage.
func KeyToBase64(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}
