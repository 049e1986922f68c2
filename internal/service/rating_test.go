package service

import (
	"context"
	"errors"
	"testing"

	"github.com/promptnexus/promptnexus/internal/apperror"
)

func newTestRatingService(t *testing.T) (*RatingService, *mockStore) {
	t.Helper()
	store := newMockStore()
	return NewRatingService(store, store, testLogger()), store
}

func TestRate(t *testing.T) {
	svc, store := newTestRatingService(t)
	prompt := seedPrompt(t, store, "rate me", "owner-1")

	rating, err := svc.Rate(context.Background(), prompt.ID, "user-2", 4)
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if rating == nil {
		t.Fatal("Rate() returned nil rating for a valid non-owner rating")
	}
	if rating.Rating != 4 {
		t.Errorf("Rating = %d, want 4", rating.Rating)
	}
}

func TestRate_OutOfRange(t *testing.T) {
	svc, store := newTestRatingService(t)
	prompt := seedPrompt(t, store, "strict", "owner-1")

	for _, value := range []int{0, -1, 6, 100} {
		_, err := svc.Rate(context.Background(), prompt.ID, "user-2", value)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Rate(%d) error = %v, want ErrValidation", value, err)
		}
	}

	// Nothing reached the store.
	if len(store.ratings) != 0 {
		t.Errorf("out-of-range ratings were persisted: %d rows", len(store.ratings))
	}
}

func TestRate_SelfRatingIsSilentNoOp(t *testing.T) {
	svc, store := newTestRatingService(t)
	prompt := seedPrompt(t, store, "my own", "owner-1")

	rating, err := svc.Rate(context.Background(), prompt.ID, "owner-1", 5)
	if err != nil {
		t.Fatalf("Rate() on own prompt: error = %v, want silent no-op", err)
	}
	if rating != nil {
		t.Errorf("Rate() on own prompt returned %+v, want nil", rating)
	}
	if len(store.ratings) != 0 {
		t.Error("self-rating reached the store")
	}
}

func TestRate_ReplacesPriorValue(t *testing.T) {
	svc, store := newTestRatingService(t)
	prompt := seedPrompt(t, store, "fickle", "owner-1")
	ctx := context.Background()

	if _, err := svc.Rate(ctx, prompt.ID, "user-2", 2); err != nil {
		t.Fatalf("first Rate() error = %v", err)
	}
	if _, err := svc.Rate(ctx, prompt.ID, "user-2", 5); err != nil {
		t.Fatalf("second Rate() error = %v", err)
	}

	if len(store.ratings) != 1 {
		t.Fatalf("user holds %d rating rows, want 1", len(store.ratings))
	}

	current, err := svc.UserRating(ctx, prompt.ID, "user-2")
	if err != nil {
		t.Fatalf("UserRating() error = %v", err)
	}
	if current == nil || current.Rating != 5 {
		t.Errorf("UserRating() = %+v, want rating 5", current)
	}
}

func TestRate_UnknownPrompt(t *testing.T) {
	svc, _ := newTestRatingService(t)

	_, err := svc.Rate(context.Background(), "no-such-prompt", "user-2", 3)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Rate() on unknown prompt: error = %v, want ErrNotFound", err)
	}
}

func TestUserRating_NeverRatedIsNil(t *testing.T) {
	svc, store := newTestRatingService(t)
	prompt := seedPrompt(t, store, "unrated", "owner-1")

	rating, err := svc.UserRating(context.Background(), prompt.ID, "user-2")
	if err != nil {
		t.Fatalf("UserRating() error = %v", err)
	}
	if rating != nil {
		t.Errorf("UserRating() = %+v, want nil for never-rated", rating)
	}
}

func TestUserRating_GuestIsNil(t *testing.T) {
	svc, store := newTestRatingService(t)
	prompt := seedPrompt(t, store, "public", "owner-1")

	rating, err := svc.UserRating(context.Background(), prompt.ID, "")
	if err != nil || rating != nil {
		t.Errorf("UserRating() for guest = (%+v, %v), want (nil, nil)", rating, err)
	}
}
