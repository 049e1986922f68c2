package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

const (
	MaxUsernameLength = 50
	MaxBioLength      = 500
)

// ProfileService handles viewing and editing user profiles.
type ProfileService struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

func NewProfileService(profiles repository.ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		logger:   logger,
	}
}

// Get returns a profile by id.
func (s *ProfileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "profile ID is required")
	}

	return s.profiles.GetProfileByID(ctx, id)
}

// Update edits the actor's own profile. Users can only edit themselves;
// email is identity and can't change here.
func (s *ProfileService) Update(ctx context.Context, actorID, username, bio, avatarURL string) (*model.Profile, error) {
	if actorID == "" {
		return nil, apperror.Forbidden("sign in to edit your profile")
	}

	username = strings.TrimSpace(username)
	bio = strings.TrimSpace(bio)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username", "username is too long")
	}
	if len(bio) > MaxBioLength {
		return nil, apperror.ValidationFailed("bio", "bio is too long")
	}

	profile, err := s.profiles.GetProfileByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	profile.Username = username
	profile.Bio = bio
	if avatarURL = strings.TrimSpace(avatarURL); avatarURL != "" {
		profile.AvatarURL = avatarURL
	}

	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		s.logger.Error("failed to update profile",
			slog.String("userID", actorID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Store("update profile", err)
	}

	s.logger.Info("profile updated", slog.String("userID", actorID))
	return profile, nil
}
