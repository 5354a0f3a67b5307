package store

import (
	"context"
	"fmt"
	"time"
)

// SaveDraftHistory appends one record to the draft history log. The log is
// never updated, only inserted and cascade-deleted with its owning user.
func (s *Store) SaveDraftHistory(ctx context.Context, userID int64, draftID, subject, recipient string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO draft_history (user_id, draft_id, subject, recipient, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, draftID, subject, recipient, time.Now().UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert draft history: %w", err)
	}
	return nil
}

// DraftHistory returns the most recent draft records for a user, newest first.
func (s *Store) DraftHistory(ctx context.Context, userID int64, limit int) ([]DraftRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT draft_id, subject, recipient, created_at
		FROM draft_history WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query draft history: %w", err)
	}
	defer rows.Close()

	var records []DraftRecord
	for rows.Next() {
		var (
			r         DraftRecord
			createdAt string
		)
		if err := rows.Scan(&r.DraftID, &r.Subject, &r.Recipient, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
