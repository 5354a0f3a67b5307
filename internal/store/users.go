package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SaveUser inserts or updates the row keyed by email and returns the user id.
// Both secret fields are encrypted before the write; on update the last-login
// timestamp is refreshed, which moves the user to the front of ListUsers.
func (s *Store) SaveUser(ctx context.Context, email, aiKey string, bundle *CredentialBundle) (int64, error) {
	encKey, err := s.cipher.Encrypt(aiKey)
	if err != nil {
		return 0, fmt.Errorf("encrypt api key: %w", err)
	}

	var encBundle sql.NullString
	if bundle != nil {
		raw, err := json.Marshal(bundle)
		if err != nil {
			return 0, fmt.Errorf("marshal credential bundle: %w", err)
		}
		enc, err := s.cipher.Encrypt(string(raw))
		if err != nil {
			return 0, fmt.Errorf("encrypt credential bundle: %w", err)
		}
		encBundle = sql.NullString{String: enc, Valid: true}
	}

	now := time.Now().UTC().Format(timeFormat)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (email, ai_key_encrypted, credentials_encrypted, created_at, last_login)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			ai_key_encrypted = excluded.ai_key_encrypted,
			credentials_encrypted = excluded.credentials_encrypted,
			last_login = excluded.last_login`,
		email, encKey, encBundle, now, now)
	if err != nil {
		return 0, fmt.Errorf("upsert user: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, email).Scan(&id); err != nil {
		return 0, fmt.Errorf("look up user id: %w", err)
	}
	return id, nil
}

// GetUser fetches the user by email with secret fields decrypted. A blob that
// fails decryption (wrong key, corruption) yields an empty AIKey or nil
// Bundle rather than an error; callers treat that as "re-authentication
// required".
func (s *Store) GetUser(ctx context.Context, email string) (*User, error) {
	var (
		u         User
		encKey    string
		encBundle sql.NullString
		createdAt string
		lastLogin string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, ai_key_encrypted, credentials_encrypted, creds_fingerprint, created_at, last_login
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &encKey, &encBundle, &u.Fingerprint, &createdAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	u.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	u.LastLogin, _ = time.Parse(timeFormat, lastLogin)

	// Decryption failures degrade to missing values.
	if key, err := s.cipher.Decrypt(encKey); err == nil {
		u.AIKey = key
	}
	if encBundle.Valid {
		if raw, err := s.cipher.Decrypt(encBundle.String); err == nil {
			u.Bundle = decodeBundle(raw)
		}
	}

	return &u, nil
}

// ListUsers returns all stored emails, most recently logged in first.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT email FROM users ORDER BY last_login DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// DeleteUser removes the user and all their draft history in one transaction,
// so a partial failure never leaves orphaned history rows.
func (s *Store) DeleteUser(ctx context.Context, email string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM draft_history WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete draft history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return tx.Commit()
}

// FindFingerprint returns the email owning the given credential fingerprint,
// or "" if no account has recorded it. What to do about a collision is the
// caller's policy.
func (s *Store) FindFingerprint(ctx context.Context, fingerprint string) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx,
		`SELECT email FROM users WHERE creds_fingerprint = ? AND creds_fingerprint != ''`,
		fingerprint).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("look up fingerprint: %w", err)
	}
	return email, nil
}

// SaveFingerprint associates a credential-file fingerprint with an email.
func (s *Store) SaveFingerprint(ctx context.Context, email, fingerprint string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET creds_fingerprint = ? WHERE email = ?`, fingerprint, email)
	if err != nil {
		return fmt.Errorf("save fingerprint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
