package model

import "time"

// Profile is a user account record.
//
// The row is upserted on first authenticated action (ensure-profile) and on
// explicit edits, and is never deleted by the application. Username defaults
// to the local part of the email when the user hasn't picked one.
//
// PasswordHash holds a bcrypt hash for email/password accounts and is empty
// for OAuth-only accounts; it is never serialized. GitHubID is set for
// accounts created through GitHub sign-in (0 otherwise) — the UNIQUE
// constraint in the store maps one GitHub account to exactly one profile.
type Profile struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	Username     string    `json:"username"   db:"username"`
	AvatarURL    string    `json:"avatar_url" db:"avatar_url"`
	Bio          string    `json:"bio"        db:"bio"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	GitHubID     int64     `json:"-"          db:"github_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Interaction is one row of a user's interaction history: either a copy
// event (Copied true, Rating nil) or a rating (Copied false, Rating set).
// The analytics aggregator derives "recently rated" from the rating-bearing
// rows.
type Interaction struct {
	PromptID  string    `json:"prompt_id"`
	Copied    bool      `json:"copied"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAnalytics is the composed payload returned by the analytics
// aggregator: the user's contributed prompt ids, their interaction history,
// and the global aggregate view. Derived statistics (ContribStats) are
// computed from it by the caller.
type UserAnalytics struct {
	ContributedCount     int64         `json:"contributed_count"`
	ContributedPromptIDs []string      `json:"contributed_prompt_ids"`
	InteractionHistory   []Interaction `json:"interaction_history"`
	PromptStats          []PromptStats `json:"prompt_stats"`
}

// ContribStats summarizes how the user's own prompts are performing:
// totals over the aggregate rows belonging to contributed prompts, with
// AvgRating a ratings-count-weighted mean.
type ContribStats struct {
	TotalCopies  int64   `json:"total_copies"`
	TotalViews   int64   `json:"total_views"`
	TotalRatings int64   `json:"total_ratings"`
	AvgRating    float64 `json:"avg_rating"`
}
