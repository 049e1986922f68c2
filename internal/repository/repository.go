// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage provides the concrete
// implementation; tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/promptnexus/promptnexus/internal/model"
)

// PromptFilter narrows a prompt listing. Both filters are inclusion-based
// (the prompt's role/task set must contain the exact value, case-sensitive)
// and are ANDed when both are set. Zero value means no filtering.
type PromptFilter struct {
	ByRole string
	ByTask string
}

// IsZero reports whether the filter selects everything.
func (f PromptFilter) IsZero() bool {
	return f.ByRole == "" && f.ByTask == ""
}

// PromptRepository is the prompt store. List returns prompts newest-first;
// pagination and search happen in the listing layer, which re-reads the
// store rather than caching.
//
// Delete on a missing id returns apperror.ErrNotFound (RowsAffected == 0);
// callers that want idempotent deletes must tolerate that error.
type PromptRepository interface {
	Create(ctx context.Context, prompt *model.Prompt) error
	GetByID(ctx context.Context, id string) (*model.Prompt, error)
	List(ctx context.Context, filter PromptFilter) ([]model.Prompt, error)
	ListIDsByOwner(ctx context.Context, userID string) ([]string, error)
	Update(ctx context.Context, prompt *model.Prompt) error
	Delete(ctx context.Context, id string) error
}

// RatingRepository stores per-user-per-prompt ratings. UpsertRating inserts
// or overwrites on the (prompt_id, user_id) conflict key, so a user holds at
// most one rating row per prompt.
type RatingRepository interface {
	UpsertRating(ctx context.Context, rating *model.Rating) error
	GetRating(ctx context.Context, promptID, userID string) (*model.Rating, error)
	ListRatingsByUser(ctx context.Context, userID string) ([]model.Rating, error)
}

// ViewRepository stores copy events. Rows are append-only: repeated copies
// accumulate rather than upserting.
type ViewRepository interface {
	InsertCopyEvent(ctx context.Context, event *model.CopyEvent) error
	ListCopyEventsByUser(ctx context.Context, userID string) ([]model.CopyEvent, error)
}

// AnalyticsRepository reads the store-computed aggregate view. The
// application never writes these rows.
type AnalyticsRepository interface {
	ListPromptStats(ctx context.Context) ([]model.PromptStats, error)
}

// ProfileRepository stores user profiles. UpsertProfile keys on the profile
// id so ensure-profile is safe to repeat; profiles are never deleted.
type ProfileRepository interface {
	UpsertProfile(ctx context.Context, profile *model.Profile) error
	GetProfileByID(ctx context.Context, id string) (*model.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	GetProfileByGitHubID(ctx context.Context, githubID int64) (*model.Profile, error)
}
