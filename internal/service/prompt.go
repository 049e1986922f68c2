// Package service contains the business logic layer.
//
// The layering follows the usual three-tier shape:
//
//	Handler (HTTP)      → parses requests, writes responses
//	Service (business)  → validates, enforces rules, orchestrates
//	Repository (data)   → reads/writes the store
//
// Services depend on the repository interfaces, never on the sqlite package,
// so tests substitute mocks and the store can change without touching this
// layer. Services return apperror values; handlers translate them to status
// codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

const (
	MaxTitleLength   = 200
	MaxContentLength = 50000

	// Reads are idempotent, so a failed fetch is retried once before the
	// error surfaces. Writes are never retried.
	readRetryAttempts = 2
	readRetryDelay    = 200 * time.Millisecond
)

// PromptService handles prompt CRUD and the ownership rules around it.
type PromptService struct {
	repo   repository.PromptRepository
	logger *slog.Logger
}

func NewPromptService(repo repository.PromptRepository, logger *slog.Logger) *PromptService {
	return &PromptService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new prompt owned by actorID.
//
// Title, description and content are required; the role and task sets must
// each carry at least one entry. Blank entries inside the sets are dropped
// before the emptiness check.
func (s *PromptService) Create(ctx context.Context, actorID string, input *model.Prompt) (*model.Prompt, error) {
	if actorID == "" {
		return nil, apperror.Forbidden("sign in to share a prompt")
	}

	prompt := &model.Prompt{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Content:      input.Content,
		Roles:        cleanSet(input.Roles),
		Tasks:        cleanSet(input.Tasks),
		SampleOutput: input.SampleOutput,
		CreatedBy:    actorID,
	}

	if err := validatePrompt(prompt); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, prompt); err != nil {
		s.logger.Error("failed to create prompt",
			slog.String("title", prompt.Title),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Store("create prompt", err)
	}

	s.logger.Info("prompt created",
		slog.String("id", prompt.ID),
		slog.String("title", prompt.Title),
		slog.String("owner", actorID),
	)

	return prompt, nil
}

// GetByID retrieves one prompt with its aggregate stats.
func (s *PromptService) GetByID(ctx context.Context, id string) (*model.Prompt, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "prompt ID is required")
	}

	var prompt *model.Prompt
	err := retry.Do(
		func() error {
			var err error
			prompt, err = s.repo.GetByID(ctx, id)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(readRetryAttempts),
		retry.Delay(readRetryDelay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	return prompt, nil
}

// List returns prompts newest-first, narrowed by the optional role/task
// filter. Pagination and title search happen in the listing layer.
func (s *PromptService) List(ctx context.Context, filter repository.PromptFilter) ([]model.Prompt, error) {
	var prompts []model.Prompt
	err := retry.Do(
		func() error {
			var err error
			prompts, err = s.repo.List(ctx, filter)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(readRetryAttempts),
		retry.Delay(readRetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.logger.Error("failed to list prompts", slog.String("error", err.Error()))
		return nil, apperror.Store("list prompts", err)
	}

	return prompts, nil
}

// Update rewrites the editable fields of a prompt the actor owns.
//
// Ownership is enforced here, not in the handler: the prompt is fetched
// first and a mismatched actor gets ErrForbidden no matter what the client
// claimed.
func (s *PromptService) Update(ctx context.Context, actorID, id string, input *model.Prompt) (*model.Prompt, error) {
	prompt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !prompt.IsOwner(actorID) {
		return nil, apperror.Forbidden("only the prompt's creator can edit it")
	}

	prompt.Title = strings.TrimSpace(input.Title)
	prompt.Description = strings.TrimSpace(input.Description)
	prompt.Content = input.Content
	prompt.Roles = cleanSet(input.Roles)
	prompt.Tasks = cleanSet(input.Tasks)
	prompt.SampleOutput = input.SampleOutput

	if err := validatePrompt(prompt); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, prompt); err != nil {
		s.logger.Error("failed to update prompt",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("prompt updated", slog.String("id", prompt.ID))
	return prompt, nil
}

// Delete removes a prompt the actor owns. Ratings and copy events on it
// cascade away in the store.
func (s *PromptService) Delete(ctx context.Context, actorID, id string) error {
	prompt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !prompt.IsOwner(actorID) {
		return apperror.Forbidden("only the prompt's creator can delete it")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("prompt deleted", slog.String("id", id), slog.String("owner", actorID))
	return nil
}

func validatePrompt(p *model.Prompt) error {
	if p.Title == "" {
		return apperror.ValidationFailed("title", "prompt title is required")
	}
	if len(p.Title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("prompt title must be %d characters or less", MaxTitleLength))
	}
	if p.Description == "" {
		return apperror.ValidationFailed("description", "prompt description is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return apperror.ValidationFailed("content", "prompt content is required")
	}
	if len(p.Content) > MaxContentLength {
		return apperror.ValidationFailed("content",
			fmt.Sprintf("prompt content must be %d characters or less", MaxContentLength))
	}
	if len(p.Roles) == 0 {
		return apperror.ValidationFailed("roles", "at least one role is required")
	}
	if len(p.Tasks) == 0 {
		return apperror.ValidationFailed("tasks", "at least one task is required")
	}
	return nil
}

// cleanSet trims entries and drops blanks, preserving order.
func cleanSet(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// isRetryable excludes NotFound from read retries — a missing row won't
// appear on the second attempt.
func isRetryable(err error) bool {
	return !errors.Is(err, apperror.ErrNotFound)
}
