package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// compile-time check that *DB implements repository.PromptRepository
var _ repository.PromptRepository = (*DB)(nil)

// promptColumns is the SELECT list shared by every prompt read. The three
// trailing columns come from the aggregate view; COALESCE covers prompts
// that have no view row yet (freshly created, no interactions).
const promptColumns = `
	p.id, p.title, p.description, p.content, p.roles, p.tasks,
	p.sample_output, p.created_by, p.created_at, p.updated_at,
	COALESCE(a.total_views, 0), COALESCE(a.avg_rating, 0), COALESCE(a.ratings_count, 0)`

const promptFrom = `
	FROM prompts p
	LEFT JOIN view_prompt_analytics a ON a.prompt_id = p.id`

// Create inserts a new prompt. The ID and timestamps are generated here and
// written back onto the caller's struct; role/task sets are stored as JSON
// arrays.
func (db *DB) Create(ctx context.Context, prompt *model.Prompt) error {
	prompt.ID = xid.New().String()

	now := time.Now()
	prompt.CreatedAt = now
	prompt.UpdatedAt = now

	roles, tasks, err := marshalSets(prompt)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO prompts (id, title, description, content, roles, tasks,
		                      sample_output, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		prompt.ID,
		prompt.Title,
		prompt.Description,
		prompt.Content,
		roles,
		tasks,
		prompt.SampleOutput,
		prompt.CreatedBy,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating prompt: %w", err)
	}

	return nil
}

// GetByID retrieves a single prompt with its aggregate stats.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Prompt, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT`+promptColumns+promptFrom+` WHERE p.id = ?`, id)

	prompt, err := scanPrompt(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("prompt", id)
		}
		return nil, fmt.Errorf("sqlite: getting prompt %s: %w", id, err)
	}

	return prompt, nil
}

// List returns prompts newest-first, optionally narrowed by role and/or
// task. Filters are inclusion-based exact matches against the stored JSON
// array elements (json_each) and are ANDed when both are present.
func (db *DB) List(ctx context.Context, filter repository.PromptFilter) ([]model.Prompt, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT`+promptColumns+promptFrom+`
		 WHERE (? = '' OR EXISTS (SELECT 1 FROM json_each(p.roles) WHERE json_each.value = ?))
		   AND (? = '' OR EXISTS (SELECT 1 FROM json_each(p.tasks) WHERE json_each.value = ?))
		 ORDER BY p.created_at DESC`,
		filter.ByRole, filter.ByRole,
		filter.ByTask, filter.ByTask,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing prompts: %w", err)
	}
	defer rows.Close()

	var prompts []model.Prompt
	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning prompt row: %w", err)
		}
		prompts = append(prompts, *prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating prompts: %w", err)
	}

	return prompts, nil
}

// ListIDsByOwner returns the ids of every prompt created by userID.
func (db *DB) ListIDsByOwner(ctx context.Context, userID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id FROM prompts WHERE created_by = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing prompt ids for owner %s: %w", userID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning prompt id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating prompt ids: %w", err)
	}

	return ids, nil
}

// Update rewrites the owner-editable fields. ID, created_by and created_at
// are immutable; the aggregate columns are never written.
func (db *DB) Update(ctx context.Context, prompt *model.Prompt) error {
	prompt.UpdatedAt = time.Now()

	roles, tasks, err := marshalSets(prompt)
	if err != nil {
		return err
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE prompts
		 SET title = ?, description = ?, content = ?, roles = ?, tasks = ?,
		     sample_output = ?, updated_at = ?
		 WHERE id = ?`,
		prompt.Title,
		prompt.Description,
		prompt.Content,
		roles,
		tasks,
		prompt.SampleOutput,
		prompt.UpdatedAt,
		prompt.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating prompt %s: %w", prompt.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("prompt", prompt.ID)
	}

	return nil
}

// Delete removes a prompt; its ratings and copy events cascade.
// Deleting a missing id returns NotFound (RowsAffected == 0).
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM prompts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting prompt %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("prompt", id)
	}

	return nil
}

// scanner is the common surface of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPrompt(s scanner) (*model.Prompt, error) {
	var (
		p           model.Prompt
		roles, tasks string
	)
	err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.Content, &roles, &tasks,
		&p.SampleOutput, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.Views, &p.AvgRating, &p.RatingsCount,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(roles), &p.Roles); err != nil {
		return nil, fmt.Errorf("decoding roles for prompt %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(tasks), &p.Tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks for prompt %s: %w", p.ID, err)
	}

	return &p, nil
}

func marshalSets(prompt *model.Prompt) (roles, tasks string, err error) {
	rolesJSON, err := json.Marshal(prompt.Roles)
	if err != nil {
		return "", "", fmt.Errorf("sqlite: encoding roles: %w", err)
	}
	tasksJSON, err := json.Marshal(prompt.Tasks)
	if err != nil {
		return "", "", fmt.Errorf("sqlite: encoding tasks: %w", err)
	}
	return string(rolesJSON), string(tasksJSON), nil
}
