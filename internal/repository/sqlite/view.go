package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// compile-time check that *DB implements repository.ViewRepository
var _ repository.ViewRepository = (*DB)(nil)

// InsertCopyEvent appends a copy event. No conflict key: repeated copies by
// the same user on the same prompt accumulate as separate rows.
func (db *DB) InsertCopyEvent(ctx context.Context, event *model.CopyEvent) error {
	event.ID = xid.New().String()
	event.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO prompt_views (id, prompt_id, user_id, copied, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		event.ID,
		event.PromptID,
		event.UserID,
		event.Copied,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting copy event (prompt=%s user=%s): %w",
			event.PromptID, event.UserID, err)
	}

	return nil
}

// ListCopyEventsByUser returns the user's copy events, newest first.
func (db *DB) ListCopyEventsByUser(ctx context.Context, userID string) ([]model.CopyEvent, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, prompt_id, user_id, copied, created_at
		 FROM prompt_views WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing copy events for user %s: %w", userID, err)
	}
	defer rows.Close()

	var events []model.CopyEvent
	for rows.Next() {
		var e model.CopyEvent
		if err := rows.Scan(&e.ID, &e.PromptID, &e.UserID, &e.Copied, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning copy event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating copy events: %w", err)
	}

	return events, nil
}
