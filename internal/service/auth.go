package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/auth"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

const MinPasswordLength = 8

// AuthService orchestrates sign-up, sign-in and the GitHub OAuth callback.
// It owns the rule that every authenticated user has a profile row: each
// entry path ends in an ensure-profile upsert before a token is issued.
type AuthService struct {
	profiles  repository.ProfileRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	profiles repository.ProfileRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		profiles:  profiles,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the profile and the issued session token so the handler
// can set the cookie and respond in one step.
type AuthResult struct {
	Profile *model.Profile
	Token   string
}

// SignUp registers an email/password account. The username defaults to the
// local part of the email; the user can change it later on their profile.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	if _, err := s.profiles.GetProfileByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("profile", email)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Store("sign up", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	profile := &model.Profile{
		Email:        email,
		Username:     usernameFromEmail(email),
		PasswordHash: hash,
	}
	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		s.logger.Error("failed to create profile on sign-up",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Store("sign up", err)
	}

	s.logger.Info("user signed up",
		slog.String("userID", profile.ID),
		slog.String("email", email),
	)

	return s.issueSession(profile)
}

// SignIn authenticates an email/password account. An unknown email and a
// wrong password produce the same error, so the endpoint doesn't leak which
// addresses are registered.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	profile, err := s.profiles.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperror.Store("sign in", err)
	}

	if profile.PasswordHash == "" {
		// OAuth-only account.
		return nil, invalidCredentials()
	}
	if err := s.passwords.Verify(profile.PasswordHash, password); err != nil {
		return nil, invalidCredentials()
	}

	s.logger.Info("user signed in", slog.String("userID", profile.ID))
	return s.issueSession(profile)
}

// LoginOrRegisterGitHub handles the OAuth callback: upsert the profile keyed
// on the stable GitHub id, then issue a session. First login inserts;
// later logins refresh email and avatar in case they changed on GitHub.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*AuthResult, error) {
	if ghUser == nil {
		return nil, fmt.Errorf("service/auth: GitHub user must not be nil")
	}

	profile := &model.Profile{
		Email:     normalizeEmail(ghUser.Email),
		Username:  ghUser.Login,
		AvatarURL: ghUser.AvatarURL,
		GitHubID:  ghUser.ID,
	}
	if profile.Email == "" {
		// GitHub hides the email when the user opted out of sharing it.
		profile.Email = fmt.Sprintf("%s@users.noreply.github.com", ghUser.Login)
	}

	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, apperror.Store(fmt.Sprintf("github login (githubID=%d)", ghUser.ID), err)
	}

	s.logger.Info("user authenticated via GitHub",
		slog.String("userID", profile.ID),
		slog.String("login", ghUser.Login),
	)

	return s.issueSession(profile)
}

// EnsureProfile guarantees a profile row exists for an authenticated subject.
// The /api/me handler calls it with the session's id and email, so a valid
// token whose profile row is missing (a reseeded database, a migration gap)
// self-heals instead of 404ing. Idempotent: repeats never overwrite a
// username or bio the user has chosen.
func (s *AuthService) EnsureProfile(ctx context.Context, userID, email string) (*model.Profile, error) {
	if userID == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	existing, err := s.profiles.GetProfileByID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Store("ensure profile", err)
	}

	// Creating needs an email; a session without one (pre-upgrade token)
	// can't be healed, so surface the original lookup failure.
	email = normalizeEmail(email)
	if validateEmail(email) != nil {
		return nil, apperror.NotFound("profile", userID)
	}

	// First time this subject acts: create the row with the default username.
	profile := &model.Profile{
		ID:       userID,
		Email:    email,
		Username: usernameFromEmail(email),
	}
	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, apperror.Store("ensure profile", err)
	}

	s.logger.Info("profile ensured",
		slog.String("userID", userID),
		slog.String("username", profile.Username),
	)

	return profile, nil
}

// ValidateToken verifies a session token and returns the user id it encodes.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	sess, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return sess.UserID, nil
}

func (s *AuthService) issueSession(profile *model.Profile) (*AuthResult, error) {
	token, err := s.tokens.Generate(auth.Session{UserID: profile.ID, Email: profile.Email})
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", profile.ID, err)
	}

	return &AuthResult{
		Profile: profile,
		Token:   token,
	}, nil
}

func invalidCredentials() error {
	return apperror.ValidationFailed("credentials", "invalid email or password")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return apperror.ValidationFailed("email", "a valid email address is required")
	}
	return nil
}

// usernameFromEmail derives the default username: the part before the "@".
func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
