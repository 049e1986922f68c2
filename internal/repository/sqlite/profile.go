package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// compile-time check that *DB implements repository.ProfileRepository
var _ repository.ProfileRepository = (*DB)(nil)

const profileColumns = `id, email, username, avatar_url, bio, password_hash,
	github_id, created_at, updated_at`

// UpsertProfile inserts a profile or refreshes an existing one. Ensure-profile
// runs this on every sign-in, so it must be safe to repeat: when the row
// already exists only fields the caller actually set are written, and a blank
// incoming username or bio never clobbers one the user chose.
func (db *DB) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	existing, err := db.lookupProfile(ctx, profile)
	if err != nil {
		return err
	}

	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		profile.UpdatedAt = time.Now()

		if profile.Username == "" {
			profile.Username = existing.Username
		}
		if profile.AvatarURL == "" {
			profile.AvatarURL = existing.AvatarURL
		}
		if profile.Bio == "" {
			profile.Bio = existing.Bio
		}
		if profile.PasswordHash == "" {
			profile.PasswordHash = existing.PasswordHash
		}
		if profile.GitHubID == 0 {
			profile.GitHubID = existing.GitHubID
		}

		_, err = db.conn.ExecContext(ctx,
			`UPDATE profiles
			 SET email = ?, username = ?, avatar_url = ?, bio = ?,
			     password_hash = ?, github_id = ?, updated_at = ?
			 WHERE id = ?`,
			profile.Email,
			profile.Username,
			profile.AvatarURL,
			profile.Bio,
			profile.PasswordHash,
			profile.GitHubID,
			profile.UpdatedAt,
			profile.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating profile %s: %w", profile.ID, err)
		}

		return nil
	}

	now := time.Now()
	if profile.ID == "" {
		profile.ID = xid.New().String()
	}
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO profiles (id, email, username, avatar_url, bio,
		                       password_hash, github_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID,
		profile.Email,
		profile.Username,
		profile.AvatarURL,
		profile.Bio,
		profile.PasswordHash,
		profile.GitHubID,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting profile (email=%s): %w", profile.Email, err)
	}

	return nil
}

// lookupProfile finds the existing row an upsert should merge into: by id
// when the caller supplied one, then by github_id, then by email.
func (db *DB) lookupProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if profile.ID != "" {
		existing, err := db.GetProfileByID(ctx, profile.ID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
	}

	if profile.GitHubID != 0 {
		existing, err := db.GetProfileByGitHubID(ctx, profile.GitHubID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
	}

	if profile.Email != "" {
		existing, err := db.GetProfileByEmail(ctx, profile.Email)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

// GetProfileByID retrieves a profile by its internal ID.
func (db *DB) GetProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	return db.getProfile(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id, id)
}

// GetProfileByEmail retrieves a profile by email address.
func (db *DB) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return db.getProfile(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email, email)
}

// GetProfileByGitHubID retrieves a profile linked to a GitHub account.
func (db *DB) GetProfileByGitHubID(ctx context.Context, githubID int64) (*model.Profile, error) {
	return db.getProfile(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE github_id = ?`,
		githubID, fmt.Sprintf("github:%d", githubID))
}

func (db *DB) getProfile(ctx context.Context, query string, arg any, key string) (*model.Profile, error) {
	var p model.Profile
	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&p.ID,
		&p.Email,
		&p.Username,
		&p.AvatarURL,
		&p.Bio,
		&p.PasswordHash,
		&p.GitHubID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("profile", key)
		}
		return nil, fmt.Errorf("sqlite: getting profile %s: %w", key, err)
	}

	return &p, nil
}
