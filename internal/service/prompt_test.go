package service

import (
	"context"
	"errors"
	"testing"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

func newTestPromptService(t *testing.T) (*PromptService, *mockStore) {
	t.Helper()
	store := newMockStore()
	return NewPromptService(store, testLogger()), store
}

func validInput() *model.Prompt {
	return &model.Prompt{
		Title:       "Clean Code Reviewer",
		Description: "Reviews code for readability",
		Content:     "You are a senior engineer. Review the following code.",
		Roles:       []string{"Developer"},
		Tasks:       []string{"Code Review"},
	}
}

func TestPromptCreate(t *testing.T) {
	svc, _ := newTestPromptService(t)

	prompt, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if prompt.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if prompt.CreatedBy != "user-1" {
		t.Errorf("CreatedBy = %q, want the acting user", prompt.CreatedBy)
	}
}

func TestPromptCreate_OwnerComesFromSession(t *testing.T) {
	svc, _ := newTestPromptService(t)

	// A forged CreatedBy in the payload must be ignored.
	input := validInput()
	input.CreatedBy = "someone-else"

	prompt, err := svc.Create(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if prompt.CreatedBy != "user-1" {
		t.Errorf("CreatedBy = %q, want session user %q", prompt.CreatedBy, "user-1")
	}
}

func TestPromptCreate_GuestForbidden(t *testing.T) {
	svc, _ := newTestPromptService(t)

	_, err := svc.Create(context.Background(), "", validInput())
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Create() as guest: error = %v, want ErrForbidden", err)
	}
}

func TestPromptCreate_Validation(t *testing.T) {
	svc, _ := newTestPromptService(t)

	cases := []struct {
		name   string
		mutate func(*model.Prompt)
	}{
		{"missing title", func(p *model.Prompt) { p.Title = "  " }},
		{"missing description", func(p *model.Prompt) { p.Description = "" }},
		{"missing content", func(p *model.Prompt) { p.Content = "   " }},
		{"no roles", func(p *model.Prompt) { p.Roles = nil }},
		{"blank roles only", func(p *model.Prompt) { p.Roles = []string{" ", ""} }},
		{"no tasks", func(p *model.Prompt) { p.Tasks = []string{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(input)

			_, err := svc.Create(context.Background(), "user-1", input)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestPromptList_RetriesOnceOnFailure(t *testing.T) {
	svc, store := newTestPromptService(t)
	seedPrompt(t, store, "survivor", "user-1")

	// One transient failure: the retry should absorb it.
	store.failReads = 1

	prompts, err := svc.List(context.Background(), repository.PromptFilter{})
	if err != nil {
		t.Fatalf("List() with one transient failure: error = %v", err)
	}
	if len(prompts) != 1 {
		t.Errorf("List() returned %d prompts, want 1", len(prompts))
	}
}

func TestPromptList_PersistentFailureSurfaces(t *testing.T) {
	svc, store := newTestPromptService(t)
	store.failReads = 10

	_, err := svc.List(context.Background(), repository.PromptFilter{})
	if !errors.Is(err, apperror.ErrStore) {
		t.Errorf("List() with store down: error = %v, want ErrStore", err)
	}
}

func TestPromptGetByID_NotFoundNotRetried(t *testing.T) {
	svc, _ := newTestPromptService(t)

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestPromptUpdate_OwnerCanEdit(t *testing.T) {
	svc, store := newTestPromptService(t)
	created := seedPrompt(t, store, "original", "user-1")

	input := validInput()
	input.Title = "renamed"

	updated, err := svc.Update(context.Background(), "user-1", created.ID, input)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("Title = %q, want %q", updated.Title, "renamed")
	}
	if updated.CreatedBy != "user-1" {
		t.Errorf("CreatedBy changed on update: %q", updated.CreatedBy)
	}
}

func TestPromptUpdate_NonOwnerForbidden(t *testing.T) {
	svc, store := newTestPromptService(t)
	created := seedPrompt(t, store, "not yours", "user-1")

	_, err := svc.Update(context.Background(), "user-2", created.ID, validInput())
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Update() by non-owner: error = %v, want ErrForbidden", err)
	}
}

func TestPromptDelete_OwnerOnly(t *testing.T) {
	svc, store := newTestPromptService(t)
	created := seedPrompt(t, store, "mine", "user-1")

	if err := svc.Delete(context.Background(), "user-2", created.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Delete() by non-owner: error = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(context.Background(), "user-1", created.ID); err != nil {
		t.Fatalf("Delete() by owner: error = %v", err)
	}

	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete: error = %v, want ErrNotFound", err)
	}
}

func TestPromptDelete_MissingIDIsNotFound(t *testing.T) {
	svc, _ := newTestPromptService(t)

	err := svc.Delete(context.Background(), "user-1", "never-existed")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() on missing id: error = %v, want ErrNotFound", err)
	}
}
