package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// compile-time check that *DB implements repository.RatingRepository
var _ repository.RatingRepository = (*DB)(nil)

// UpsertRating inserts a rating or overwrites the existing one for the same
// (prompt_id, user_id) pair. A repeat rating updates the value in place —
// the original row id and created_at survive, so the user's rating per
// prompt never grows past one row.
//
// After the write the canonical row is read back into the caller's struct;
// concurrent submissions by the same user race at the store and resolve
// last-write-wins.
func (db *DB) UpsertRating(ctx context.Context, rating *model.Rating) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO prompt_ratings (id, prompt_id, user_id, rating, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (prompt_id, user_id) DO UPDATE SET rating = excluded.rating`,
		xid.New().String(),
		rating.PromptID,
		rating.UserID,
		rating.Rating,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting rating (prompt=%s user=%s): %w",
			rating.PromptID, rating.UserID, err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT id, prompt_id, user_id, rating, created_at
		 FROM prompt_ratings WHERE prompt_id = ? AND user_id = ?`,
		rating.PromptID, rating.UserID,
	).Scan(&rating.ID, &rating.PromptID, &rating.UserID, &rating.Rating, &rating.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: reading back rating (prompt=%s user=%s): %w",
			rating.PromptID, rating.UserID, err)
	}

	return nil
}

// GetRating returns the user's rating for a prompt, or NotFound if the user
// never rated it.
func (db *DB) GetRating(ctx context.Context, promptID, userID string) (*model.Rating, error) {
	var r model.Rating
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, prompt_id, user_id, rating, created_at
		 FROM prompt_ratings WHERE prompt_id = ? AND user_id = ?`,
		promptID, userID,
	).Scan(&r.ID, &r.PromptID, &r.UserID, &r.Rating, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("rating", promptID+"/"+userID)
		}
		return nil, fmt.Errorf("sqlite: getting rating (prompt=%s user=%s): %w",
			promptID, userID, err)
	}

	return &r, nil
}

// ListRatingsByUser returns every rating the user has submitted, newest first.
func (db *DB) ListRatingsByUser(ctx context.Context, userID string) ([]model.Rating, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, prompt_id, user_id, rating, created_at
		 FROM prompt_ratings WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing ratings for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		var r model.Rating
		if err := rows.Scan(&r.ID, &r.PromptID, &r.UserID, &r.Rating, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning rating row: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating ratings: %w", err)
	}

	return ratings, nil
}
