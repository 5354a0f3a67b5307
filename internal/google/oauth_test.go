package google

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreaCatalan/automated-email/internal/store"
)

const testCredentials = `{
  "installed": {
    "client_id": "test-client.apps.googleusercontent.com",
    "client_secret": "test-secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["urn:ietf:wg:oauth:2.0:oob"]
  }
}`

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write credentials file: %v", err)
	}
	return path
}

func TestNewFlow(t *testing.T) {
	f, err := NewFlow(writeCredentials(t, testCredentials))
	if err != nil {
		t.Fatalf("NewFlow() error = %v", err)
	}
	if f.conf.ClientID != "test-client.apps.googleusercontent.com" {
		t.Errorf("ClientID = %q", f.conf.ClientID)
	}
	if f.conf.RedirectURL != OOB {
		t.Errorf("RedirectURL = %q, want OOB", f.conf.RedirectURL)
	}
}

func TestNewFlow_MissingFile(t *testing.T) {
	if _, err := NewFlow(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("NewFlow() with missing file should fail")
	}
}

func TestNewFlow_MalformedFile(t *testing.T) {
	if _, err := NewFlow(writeCredentials(t, "not json")); err == nil {
		t.Error("NewFlow() with malformed file should fail")
	}
}

func TestAuthURL(t *testing.T) {
	f, err := NewFlow(writeCredentials(t, testCredentials))
	if err != nil {
		t.Fatalf("NewFlow() error = %v", err)
	}

	url := f.AuthURL()
	if !strings.Contains(url, "access_type=offline") {
		t.Errorf("AuthURL should request offline access: %s", url)
	}
	if !strings.Contains(url, "spreadsheets.readonly") {
		t.Errorf("AuthURL should carry the Sheets scope: %s", url)
	}
	if !strings.Contains(url, "gmail.compose") {
		t.Errorf("AuthURL should carry the Gmail compose scope: %s", url)
	}
}

func TestTokenSource_InvalidBundle(t *testing.T) {
	ctx := context.Background()

	if _, err := TokenSource(ctx, nil); err == nil {
		t.Error("TokenSource(nil) should fail")
	}

	incomplete := &store.CredentialBundle{Token: "access-only"}
	if _, err := TokenSource(ctx, incomplete); err == nil {
		t.Error("TokenSource with incomplete bundle should fail")
	}
}

func TestTokenSource_ValidBundle(t *testing.T) {
	b := &store.CredentialBundle{
		Token:        "ya29.access",
		RefreshToken: "1//refresh",
		TokenURI:     "https://oauth2.googleapis.com/token",
		ClientID:     "test-client.apps.googleusercontent.com",
		ClientSecret: "test-secret",
		Scopes:       Scopes,
	}

	ts, err := TokenSource(context.Background(), b)
	if err != nil {
		t.Fatalf("TokenSource() error = %v", err)
	}
	if ts == nil {
		t.Fatal("TokenSource() returned nil source")
	}
}

func TestFingerprint(t *testing.T) {
	path := writeCredentials(t, testCredentials)

	fp1, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if len(fp1) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(fp1))
	}

	fp2, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint() second call error = %v", err)
	}
	if fp1 != fp2 {
		t.Error("fingerprint should be deterministic for the same file")
	}

	other := writeCredentials(t, strings.Replace(testCredentials, "test-client", "other-client", 1))
	fp3, err := Fingerprint(other)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if fp1 == fp3 {
		t.Error("different files should produce different fingerprints")
	}
}

func TestFingerprint_MissingFile(t *testing.T) {
	if _, err := Fingerprint(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Fingerprint() with missing file should fail")
	}
}
