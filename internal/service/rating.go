package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// RatingService handles star ratings. It needs the prompt repository too:
// the self-rating guard has to know who owns the prompt being rated.
type RatingService struct {
	ratings repository.RatingRepository
	prompts repository.PromptRepository
	logger  *slog.Logger
}

func NewRatingService(
	ratings repository.RatingRepository,
	prompts repository.PromptRepository,
	logger *slog.Logger,
) *RatingService {
	return &RatingService{
		ratings: ratings,
		prompts: prompts,
		logger:  logger,
	}
}

// Rate records actorID's rating of a prompt. Re-rating overwrites the prior
// value — a user holds at most one rating per prompt.
//
// Rating your own prompt is a silent no-op: the call succeeds with a nil
// rating and nothing is written. Out-of-range values are rejected before any
// store access.
func (s *RatingService) Rate(ctx context.Context, promptID, actorID string, value int) (*model.Rating, error) {
	if actorID == "" {
		return nil, apperror.Forbidden("sign in to rate prompts")
	}
	if value < 1 || value > 5 {
		return nil, apperror.InvalidRating(value)
	}

	prompt, err := s.prompts.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}

	if prompt.IsOwner(actorID) {
		s.logger.Debug("ignoring self-rating",
			slog.String("promptID", promptID),
			slog.String("userID", actorID),
		)
		return nil, nil
	}

	rating := &model.Rating{
		PromptID: promptID,
		UserID:   actorID,
		Rating:   value,
	}
	if err := s.ratings.UpsertRating(ctx, rating); err != nil {
		s.logger.Error("failed to upsert rating",
			slog.String("promptID", promptID),
			slog.String("userID", actorID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Store("rate prompt", err)
	}

	s.logger.Info("prompt rated",
		slog.String("promptID", promptID),
		slog.String("userID", actorID),
		slog.Int("rating", value),
	)

	return rating, nil
}

// UserRating returns the user's existing rating for a prompt, or nil if they
// haven't rated it. "Never rated" is a normal state, not an error.
func (s *RatingService) UserRating(ctx context.Context, promptID, userID string) (*model.Rating, error) {
	if userID == "" {
		return nil, nil
	}

	rating, err := s.ratings.GetRating(ctx, promptID, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return rating, nil
}
