// Package model defines the data structures shared across the application.
// Structs here mirror the rows in the backing store; the `json` tags control
// how they serialize on the API, the `db` tags document the column names.
package model

import "time"

// Prompt is a reusable AI-prompt template contributed by a user.
//
// Roles and Tasks categorize the prompt ("Developer", "Code Review", ...) and
// must each contain at least one entry — creation is rejected otherwise.
//
// Views, AvgRating and RatingsCount are derived from the store's aggregate
// analytics view. They are read-only from the application's perspective:
// the repository populates them on reads and never writes them back.
type Prompt struct {
	ID           string    `json:"id"            db:"id"`
	Title        string    `json:"title"         db:"title"`
	Description  string    `json:"description"   db:"description"`
	Content      string    `json:"content"       db:"content"`
	Roles        []string  `json:"roles"         db:"roles"`
	Tasks        []string  `json:"tasks"         db:"tasks"`
	CreatedBy    string    `json:"created_by"    db:"created_by"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
	SampleOutput string    `json:"sample_output,omitempty" db:"sample_output"`

	// Derived — sourced from the aggregate analytics view on reads.
	Views        int64   `json:"views"`
	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int64   `json:"ratings_count"`
}

// IsOwner reports whether userID is the prompt's creator.
//
// This is the single ownership predicate for the whole application —
// rating/copy self-action guards, edit/delete authorization, and the
// listing's rendering hints all go through it.
func (p *Prompt) IsOwner(userID string) bool {
	return userID != "" && p.CreatedBy == userID
}

// HasRole reports whether the prompt's role set contains role
// (case-sensitive exact match, same as the store-side filter).
func (p *Prompt) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasTask reports whether the prompt's task set contains task.
func (p *Prompt) HasTask(task string) bool {
	for _, t := range p.Tasks {
		if t == task {
			return true
		}
	}
	return false
}
