package store

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// CredentialBundle is the delegated Google credential set persisted
// (encrypted) for a user. Field names follow the wire shape of an installed
// app token, so the bundle round-trips through JSON.
type CredentialBundle struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
}

// Valid reports whether the bundle carries enough to build a token source.
// A bundle failing this check routes the user to re-authentication.
func (b *CredentialBundle) Valid() bool {
	if b == nil {
		return false
	}
	if b.Token == "" && b.RefreshToken == "" {
		return false
	}
	return b.TokenURI != "" && b.ClientID != ""
}

// decodeBundle parses a decrypted bundle. Malformed or incomplete JSON is a
// decode failure, not a partial object.
func decodeBundle(plaintext string) *CredentialBundle {
	if plaintext == "" {
		return nil
	}
	var b CredentialBundle
	if err := json.Unmarshal([]byte(plaintext), &b); err != nil {
		return nil
	}
	if !b.Valid() {
		return nil
	}
	return &b
}

// User is a stored account with its secrets decrypted. A nil Bundle or empty
// AIKey after a successful fetch means the stored blob could not be decrypted
// and the user must re-authenticate.
type User struct {
	ID          int64
	Email       string
	AIKey       string
	Bundle      *CredentialBundle
	Fingerprint string
	CreatedAt   time.Time
	LastLogin   time.Time
}

// DraftRecord is one entry of the append-only draft history log.
type DraftRecord struct {
	DraftID   string
	Subject   string
	Recipient string
	CreatedAt time.Time
}
