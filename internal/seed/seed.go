// Package seed loads the starter prompt catalogue so a fresh install has
// something to browse. Seeding is idempotent: it runs only when the
// catalogue is empty.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// curatorID owns the starter prompts. A stable id keeps reseeding against a
// wiped catalogue from creating a second curator profile.
const curatorID = "promptnexus-curator"

// Store is the slice of the repository layer seeding needs.
type Store interface {
	repository.PromptRepository
	repository.ProfileRepository
}

// Run inserts the starter catalogue unless prompts already exist. It returns
// the number of prompts inserted (0 when the catalogue was non-empty).
func Run(ctx context.Context, store Store, logger *slog.Logger) (int, error) {
	existing, err := store.List(ctx, repository.PromptFilter{})
	if err != nil {
		return 0, fmt.Errorf("seed: checking catalogue: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("catalogue already populated, skipping seed",
			slog.Int("prompts", len(existing)))
		return 0, nil
	}

	curator := &model.Profile{
		ID:       curatorID,
		Email:    "curator@promptnexus.dev",
		Username: "promptnexus",
		Bio:      "Starter prompts maintained by the PromptNexus team.",
	}
	if err := store.UpsertProfile(ctx, curator); err != nil {
		return 0, fmt.Errorf("seed: creating curator profile: %w", err)
	}

	for i := range starterPrompts {
		prompt := starterPrompts[i]
		prompt.CreatedBy = curatorID
		if err := store.Create(ctx, &prompt); err != nil {
			return i, fmt.Errorf("seed: inserting %q: %w", prompt.Title, err)
		}
	}

	logger.Info("seeded starter catalogue", slog.Int("prompts", len(starterPrompts)))
	return len(starterPrompts), nil
}
