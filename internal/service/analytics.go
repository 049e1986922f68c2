package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// RecentlyRatedLimit caps the "recently rated" list on the dashboard.
const RecentlyRatedLimit = 5

// AnalyticsService composes the per-user dashboard payload from three
// independent reads: the user's contributed prompt ids, their interaction
// history, and the store-computed aggregate view.
type AnalyticsService struct {
	prompts   repository.PromptRepository
	ratings   repository.RatingRepository
	views     repository.ViewRepository
	analytics repository.AnalyticsRepository
	logger    *slog.Logger
}

func NewAnalyticsService(
	prompts repository.PromptRepository,
	ratings repository.RatingRepository,
	views repository.ViewRepository,
	analytics repository.AnalyticsRepository,
	logger *slog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		prompts:   prompts,
		ratings:   ratings,
		views:     views,
		analytics: analytics,
		logger:    logger,
	}
}

// UserAnalytics fetches the three read sets in parallel. The reads don't
// depend on each other, and any single failure cancels the rest and fails
// the whole call — a partially composed dashboard would show numbers that
// disagree with each other.
func (s *AnalyticsService) UserAnalytics(ctx context.Context, userID string) (*model.UserAnalytics, error) {
	if userID == "" {
		return nil, apperror.Forbidden("sign in to view analytics")
	}

	var (
		contributed []string
		history     []model.Interaction
		stats       []model.PromptStats
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ids, err := s.prompts.ListIDsByOwner(gctx, userID)
		if err != nil {
			return err
		}
		contributed = ids
		return nil
	})

	g.Go(func() error {
		interactions, err := s.interactionHistory(gctx, userID)
		if err != nil {
			return err
		}
		history = interactions
		return nil
	})

	g.Go(func() error {
		rows, err := s.analytics.ListPromptStats(gctx)
		if err != nil {
			return err
		}
		stats = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to compose user analytics",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Store("user analytics", err)
	}

	return &model.UserAnalytics{
		ContributedCount:     int64(len(contributed)),
		ContributedPromptIDs: contributed,
		InteractionHistory:   history,
		PromptStats:          stats,
	}, nil
}

// GlobalStats returns the aggregate view for the whole catalogue.
func (s *AnalyticsService) GlobalStats(ctx context.Context) ([]model.PromptStats, error) {
	stats, err := s.analytics.ListPromptStats(ctx)
	if err != nil {
		s.logger.Error("failed to read global stats", slog.String("error", err.Error()))
		return nil, apperror.Store("global stats", err)
	}
	return stats, nil
}

// interactionHistory merges the user's ratings and copy events into one
// newest-first timeline.
func (s *AnalyticsService) interactionHistory(ctx context.Context, userID string) ([]model.Interaction, error) {
	ratings, err := s.ratings.ListRatingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	copies, err := s.views.ListCopyEventsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := make([]model.Interaction, 0, len(ratings)+len(copies))
	for _, r := range ratings {
		value := r.Rating
		history = append(history, model.Interaction{
			PromptID:  r.PromptID,
			Rating:    &value,
			CreatedAt: r.CreatedAt,
		})
	}
	for _, c := range copies {
		history = append(history, model.Interaction{
			PromptID:  c.PromptID,
			Copied:    c.Copied,
			CreatedAt: c.CreatedAt,
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})

	return history, nil
}

// ContribStats reduces the aggregate rows belonging to the user's own
// prompts into dashboard totals.
//
// The average is weighted by each prompt's ratings count — summing per-prompt
// averages and dividing by the prompt count would let a single 1-rating
// prompt drag down a heavily rated catalogue. The denominator is floored at
// one so a contributor with no ratings yet shows 0.0 rather than NaN.
func ContribStats(a *model.UserAnalytics) model.ContribStats {
	contributed := make(map[string]bool, len(a.ContributedPromptIDs))
	for _, id := range a.ContributedPromptIDs {
		contributed[id] = true
	}

	var stats model.ContribStats
	var weightedSum float64
	for _, row := range a.PromptStats {
		if !contributed[row.PromptID] {
			continue
		}
		stats.TotalCopies += row.TotalCopies
		stats.TotalViews += row.TotalViews
		stats.TotalRatings += row.RatingsCount
		weightedSum += row.AvgRating * float64(row.RatingsCount)
	}

	denom := stats.TotalRatings
	if denom < 1 {
		denom = 1
	}
	stats.AvgRating = weightedSum / float64(denom)

	return stats
}

// RecentlyRated returns the prompts behind the user's most recent ratings,
// newest first, capped at RecentlyRatedLimit. Copy events don't count, and
// ratings whose prompt has since been deleted are skipped without failing
// the call.
func (s *AnalyticsService) RecentlyRated(ctx context.Context, userID string) ([]model.Prompt, error) {
	ratings, err := s.ratings.ListRatingsByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Store("recently rated", err)
	}

	prompts := make([]model.Prompt, 0, RecentlyRatedLimit)
	for _, r := range ratings {
		if len(prompts) == RecentlyRatedLimit {
			break
		}
		prompt, err := s.prompts.GetByID(ctx, r.PromptID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				continue
			}
			return nil, err
		}
		prompts = append(prompts, *prompt)
	}

	return prompts, nil
}
