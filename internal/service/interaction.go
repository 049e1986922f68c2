package service

import (
	"context"
	"log/slog"

	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// InteractionService records copy-to-clipboard events.
//
// Copy logging is strictly best-effort: the user already has the prompt text
// on their clipboard by the time this runs, so a failed write must never
// surface as an error. Failures are logged and swallowed.
type InteractionService struct {
	views   repository.ViewRepository
	prompts repository.PromptRepository
	logger  *slog.Logger
}

func NewInteractionService(
	views repository.ViewRepository,
	prompts repository.PromptRepository,
	logger *slog.Logger,
) *InteractionService {
	return &InteractionService{
		views:   views,
		prompts: prompts,
		logger:  logger,
	}
}

// LogCopy records that actorID copied a prompt. Guests and owners are
// skipped silently: guest copies aren't tracked, and copying your own prompt
// must not inflate its numbers.
func (s *InteractionService) LogCopy(ctx context.Context, promptID, actorID string) {
	if actorID == "" {
		return
	}

	prompt, err := s.prompts.GetByID(ctx, promptID)
	if err != nil {
		s.logger.Warn("copy not logged: prompt lookup failed",
			slog.String("promptID", promptID),
			slog.String("error", err.Error()),
		)
		return
	}

	if prompt.IsOwner(actorID) {
		return
	}

	event := &model.CopyEvent{
		PromptID: promptID,
		UserID:   actorID,
		Copied:   true,
	}
	if err := s.views.InsertCopyEvent(ctx, event); err != nil {
		s.logger.Warn("copy not logged: insert failed",
			slog.String("promptID", promptID),
			slog.String("userID", actorID),
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Debug("copy logged",
		slog.String("promptID", promptID),
		slog.String("userID", actorID),
	)
}
