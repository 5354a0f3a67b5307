package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreaCatalan/automated-email/internal/cryptox"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	key, err := cryptox.GenerateKey()
	require.NoError(t, err)
	return newTestStoreWithKey(t, key, filepath.Join(t.TempDir(), "test.db"))
}

func newTestStoreWithKey(t *testing.T, key []byte, path string) *Store {
	t.Helper()
	cipher, err := cryptox.NewCipher(key)
	require.NoError(t, err)
	s, err := Open(context.Background(), path, cipher)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testBundle() *CredentialBundle {
	return &CredentialBundle{
		Token:        "ya29.access",
		RefreshToken: "1//refresh",
		TokenURI:     "https://oauth2.googleapis.com/token",
		ClientID:     "client-id.apps.googleusercontent.com",
		ClientSecret: "client-secret",
		Scopes:       []string{"https://www.googleapis.com/auth/spreadsheets.readonly", "openid"},
	}
}

func TestSaveUser_GetUser_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bundle := testBundle()
	id, err := s.SaveUser(ctx, "jane@example.com", "api-key-123", bundle)
	require.NoError(t, err)
	assert.NotZero(t, id)

	u, err := s.GetUser(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "api-key-123", u.AIKey)
	require.NotNil(t, u.Bundle)
	assert.Equal(t, bundle.RefreshToken, u.Bundle.RefreshToken)
	assert.Equal(t, bundle.Scopes, u.Bundle.Scopes)
	assert.False(t, u.CreatedAt.IsZero())
	assert.False(t, u.LastLogin.IsZero())
}

func TestSaveUser_UpsertKeepsOneRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.SaveUser(ctx, "jane@example.com", "first-key", nil)
	require.NoError(t, err)
	id2, err := s.SaveUser(ctx, "jane@example.com", "second-key", testBundle())
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "upsert must not create a second row")

	emails, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, emails, 1)

	u, err := s.GetUser(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "second-key", u.AIKey, "the second key should win")
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers_OrderedByLastLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := s.SaveUser(ctx, email, "key", nil)
		require.NoError(t, err)
	}

	emails, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, emails, 3)
	assert.Equal(t, "c@example.com", emails[0], "most recent login first")

	// Logging in again moves the account to the front.
	_, err = s.SaveUser(ctx, "a@example.com", "key", nil)
	require.NoError(t, err)

	emails, err = s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", emails[0])
}

func TestDeleteUser_CascadesHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveUser(ctx, "jane@example.com", "key", nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveDraftHistory(ctx, id, "draft-1", "Subject", "boss@example.com"))
	require.NoError(t, s.SaveDraftHistory(ctx, id, "draft-2", "Subject", "boss@example.com"))

	require.NoError(t, s.DeleteUser(ctx, "jane@example.com"))

	_, err = s.GetUser(ctx, "jane@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	records, err := s.DraftHistory(ctx, id, 10)
	require.NoError(t, err)
	assert.Empty(t, records, "draft history should be deleted with its user")
}

func TestDeleteUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteUser(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftHistory_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveUser(ctx, "jane@example.com", "key", nil)
	require.NoError(t, err)

	for _, draftID := range []string{"draft-1", "draft-2", "draft-3"} {
		require.NoError(t, s.SaveDraftHistory(ctx, id, draftID, "Daily Status", "boss@example.com"))
	}

	records, err := s.DraftHistory(ctx, id, 2)
	require.NoError(t, err)
	require.Len(t, records, 2, "limit should cap the result")
	assert.Equal(t, "draft-3", records[0].DraftID, "newest record first")
}

func TestFingerprint_SaveAndFind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveUser(ctx, "jane@example.com", "key", nil)
	require.NoError(t, err)

	email, err := s.FindFingerprint(ctx, "abc123")
	require.NoError(t, err)
	assert.Empty(t, email, "unknown fingerprint should find nothing")

	require.NoError(t, s.SaveFingerprint(ctx, "jane@example.com", "abc123"))

	email, err = s.FindFingerprint(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)
}

func TestSaveFingerprint_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveFingerprint(context.Background(), "missing@x.com", "fp")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUser_WrongKeyDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	key1, err := cryptox.GenerateKey()
	require.NoError(t, err)
	s1 := newTestStoreWithKey(t, key1, path)
	_, err = s1.SaveUser(ctx, "jane@example.com", "api-key", testBundle())
	require.NoError(t, err)
	s1.Close()

	// Reopen the same database with a different key; decryption must degrade
	// to missing values, never an error.
	key2, err := cryptox.GenerateKey()
	require.NoError(t, err)
	s2 := newTestStoreWithKey(t, key2, path)

	u, err := s2.GetUser(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Empty(t, u.AIKey)
	assert.Nil(t, u.Bundle)
}

func TestDecodeBundle_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not json", "not json at all"},
		{"missing token uri", `{"token":"t","client_id":"c"}`},
		{"missing tokens", `{"token_uri":"u","client_id":"c"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, decodeBundle(tt.input))
		})
	}

	// Refresh token alone is enough to rebuild a token source.
	assert.NotNil(t, decodeBundle(`{"refresh_token":"r","token_uri":"u","client_id":"c"}`))
}
