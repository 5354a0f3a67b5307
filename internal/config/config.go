package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Defaults for local file locations. They match what the tool creates in the
// working directory on first run.
const (
	DefaultDatabasePath    = "users.db"
	DefaultKeyFile         = "secret.key"
	DefaultCredentialsFile = "credentials.json"
	DefaultModel           = "gemini-2.0-flash"
)

// Config holds runtime configuration sourced from the environment.
type Config struct {
	// DatabasePath is the path to the SQLite credential store.
	DatabasePath string

	// SecretKey is the base64-encoded AES-256 key for encrypting stored
	// credentials. Empty means fall back to KeyFile.
	SecretKey string

	// KeyFile is the fallback location of the encryption key when SECRET_KEY
	// is not set.
	KeyFile string

	// CredentialsFile is the OAuth client secrets file (installed app).
	CredentialsFile string

	// Model is the generation model used for composing reports.
	Model string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win over
// values from the file.
func Load() *Config {
	// Ignore a missing .env; it is optional.
	_ = godotenv.Load()

	return &Config{
		DatabasePath:    envOr("DATABASE_PATH", DefaultDatabasePath),
		SecretKey:       os.Getenv("SECRET_KEY"),
		KeyFile:         envOr("SECRET_KEY_FILE", DefaultKeyFile),
		CredentialsFile: envOr("GOOGLE_CREDENTIALS_FILE", DefaultCredentialsFile),
		Model:           envOr("GENAI_MODEL", DefaultModel),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
