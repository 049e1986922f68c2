package model

import "time"

// Rating is one user's 1-5 star rating of one prompt.
//
// The store enforces a UNIQUE constraint on (prompt_id, user_id): re-rating
// overwrites the prior row, so a user's rating history per prompt is at most
// one row long.
type Rating struct {
	ID        string    `json:"id"         db:"id"`
	PromptID  string    `json:"prompt_id"  db:"prompt_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Rating    int       `json:"rating"     db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CopyEvent is a self-reported copy-to-clipboard action on a prompt.
//
// Unlike ratings these are append-only: repeated copies by the same user on
// the same prompt accumulate as separate rows. Rows are never written when
// the acting user owns the prompt.
type CopyEvent struct {
	ID        string    `json:"id"         db:"id"`
	PromptID  string    `json:"prompt_id"  db:"prompt_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Copied    bool      `json:"copied"     db:"copied"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PromptStats is one row of the store's read-only aggregate analytics view:
// per-prompt rating and view/copy totals recomputed by the store from the
// prompt_ratings and prompt_views tables. The application only ever reads it.
type PromptStats struct {
	PromptID     string  `json:"prompt_id"     db:"prompt_id"`
	AvgRating    float64 `json:"avg_rating"    db:"avg_rating"`
	RatingsCount int64   `json:"ratings_count" db:"ratings_count"`
	TotalViews   int64   `json:"total_views"   db:"total_views"`
	TotalCopies  int64   `json:"total_copies"  db:"total_copies"`
}
