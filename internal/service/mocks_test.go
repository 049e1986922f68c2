package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/promptnexus/promptnexus/internal/apperror"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// mockStore is an in-memory implementation of every repository interface.
// Hand-written rather than generated: the behaviors under test (upsert
// conflict keys, cascade on delete, the aggregate view) are easier to see
// spelled out, and error injection is a field flip.
type mockStore struct {
	prompts     map[string]*model.Prompt
	promptOrder []string // insertion order; List returns the reverse
	ratings     map[string]*model.Rating
	copies      []model.CopyEvent
	profiles    map[string]*model.Profile

	nextID int
	now    time.Time

	mu         sync.Mutex // guards failReads; reads can run concurrently
	failReads  int        // fail the next N reads with errStoreDown
	failWrites bool
}

var errStoreDown = errors.New("store unreachable")

func newMockStore() *mockStore {
	return &mockStore{
		prompts:  make(map[string]*model.Prompt),
		ratings:  make(map[string]*model.Rating),
		profiles: make(map[string]*model.Profile),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockStore) genID() string {
	m.nextID++
	return fmt.Sprintf("mock-%d", m.nextID)
}

// tick returns a strictly increasing timestamp so newest-first ordering is
// deterministic.
func (m *mockStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *mockStore) readErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads > 0 {
		m.failReads--
		return errStoreDown
	}
	return nil
}

// ---- repository.PromptRepository ----

func (m *mockStore) Create(_ context.Context, prompt *model.Prompt) error {
	if m.failWrites {
		return errStoreDown
	}
	prompt.ID = m.genID()
	prompt.CreatedAt = m.tick()
	prompt.UpdatedAt = prompt.CreatedAt
	stored := *prompt
	m.prompts[prompt.ID] = &stored
	m.promptOrder = append(m.promptOrder, prompt.ID)
	return nil
}

func (m *mockStore) GetByID(_ context.Context, id string) (*model.Prompt, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	prompt, ok := m.prompts[id]
	if !ok {
		return nil, apperror.NotFound("prompt", id)
	}
	result := *prompt
	return &result, nil
}

func (m *mockStore) List(_ context.Context, filter repository.PromptFilter) ([]model.Prompt, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	result := make([]model.Prompt, 0, len(m.promptOrder))
	for i := len(m.promptOrder) - 1; i >= 0; i-- {
		p := m.prompts[m.promptOrder[i]]
		if filter.ByRole != "" && !p.HasRole(filter.ByRole) {
			continue
		}
		if filter.ByTask != "" && !p.HasTask(filter.ByTask) {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockStore) ListIDsByOwner(_ context.Context, userID string) ([]string, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	var ids []string
	for i := len(m.promptOrder) - 1; i >= 0; i-- {
		if m.prompts[m.promptOrder[i]].CreatedBy == userID {
			ids = append(ids, m.promptOrder[i])
		}
	}
	return ids, nil
}

func (m *mockStore) Update(_ context.Context, prompt *model.Prompt) error {
	if m.failWrites {
		return errStoreDown
	}
	if _, ok := m.prompts[prompt.ID]; !ok {
		return apperror.NotFound("prompt", prompt.ID)
	}
	prompt.UpdatedAt = m.tick()
	stored := *prompt
	m.prompts[prompt.ID] = &stored
	return nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	if m.failWrites {
		return errStoreDown
	}
	if _, ok := m.prompts[id]; !ok {
		return apperror.NotFound("prompt", id)
	}
	delete(m.prompts, id)
	for i, pid := range m.promptOrder {
		if pid == id {
			m.promptOrder = append(m.promptOrder[:i], m.promptOrder[i+1:]...)
			break
		}
	}
	for key, r := range m.ratings {
		if r.PromptID == id {
			delete(m.ratings, key)
		}
	}
	kept := m.copies[:0]
	for _, c := range m.copies {
		if c.PromptID != id {
			kept = append(kept, c)
		}
	}
	m.copies = kept
	return nil
}

// ---- repository.RatingRepository ----

func ratingKey(promptID, userID string) string {
	return promptID + "/" + userID
}

func (m *mockStore) UpsertRating(_ context.Context, rating *model.Rating) error {
	if m.failWrites {
		return errStoreDown
	}
	key := ratingKey(rating.PromptID, rating.UserID)
	if existing, ok := m.ratings[key]; ok {
		existing.Rating = rating.Rating
		*rating = *existing
		return nil
	}
	rating.ID = m.genID()
	rating.CreatedAt = m.tick()
	stored := *rating
	m.ratings[key] = &stored
	return nil
}

func (m *mockStore) GetRating(_ context.Context, promptID, userID string) (*model.Rating, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	rating, ok := m.ratings[ratingKey(promptID, userID)]
	if !ok {
		return nil, apperror.NotFound("rating", ratingKey(promptID, userID))
	}
	result := *rating
	return &result, nil
}

func (m *mockStore) ListRatingsByUser(_ context.Context, userID string) ([]model.Rating, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	var result []model.Rating
	for _, r := range m.ratings {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	// newest first
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].CreatedAt.After(result[i].CreatedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

// ---- repository.ViewRepository ----

func (m *mockStore) InsertCopyEvent(_ context.Context, event *model.CopyEvent) error {
	if m.failWrites {
		return errStoreDown
	}
	event.ID = m.genID()
	event.CreatedAt = m.tick()
	m.copies = append(m.copies, *event)
	return nil
}

func (m *mockStore) ListCopyEventsByUser(_ context.Context, userID string) ([]model.CopyEvent, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	var result []model.CopyEvent
	for i := len(m.copies) - 1; i >= 0; i-- {
		if m.copies[i].UserID == userID {
			result = append(result, m.copies[i])
		}
	}
	return result, nil
}

// ---- repository.AnalyticsRepository ----

// ListPromptStats recomputes aggregates from the raw rows, mirroring what
// the SQL view does in the real store.
func (m *mockStore) ListPromptStats(_ context.Context) ([]model.PromptStats, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	stats := make([]model.PromptStats, 0, len(m.promptOrder))
	for _, id := range m.promptOrder {
		row := model.PromptStats{PromptID: id}
		var sum int
		for _, r := range m.ratings {
			if r.PromptID == id {
				row.RatingsCount++
				sum += r.Rating
			}
		}
		if row.RatingsCount > 0 {
			row.AvgRating = float64(sum) / float64(row.RatingsCount)
		}
		for _, c := range m.copies {
			if c.PromptID == id {
				row.TotalViews++
				if c.Copied {
					row.TotalCopies++
				}
			}
		}
		stats = append(stats, row)
	}
	return stats, nil
}

// ---- repository.ProfileRepository ----

func (m *mockStore) UpsertProfile(_ context.Context, profile *model.Profile) error {
	if m.failWrites {
		return errStoreDown
	}
	for _, existing := range m.profiles {
		match := (profile.ID != "" && existing.ID == profile.ID) ||
			(profile.GitHubID != 0 && existing.GitHubID == profile.GitHubID) ||
			(profile.Email != "" && existing.Email == profile.Email)
		if !match {
			continue
		}
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if profile.Username == "" {
			profile.Username = existing.Username
		}
		if profile.Bio == "" {
			profile.Bio = existing.Bio
		}
		if profile.PasswordHash == "" {
			profile.PasswordHash = existing.PasswordHash
		}
		stored := *profile
		m.profiles[profile.ID] = &stored
		return nil
	}
	if profile.ID == "" {
		profile.ID = m.genID()
	}
	profile.CreatedAt = m.tick()
	stored := *profile
	m.profiles[profile.ID] = &stored
	return nil
}

func (m *mockStore) GetProfileByID(_ context.Context, id string) (*model.Profile, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	profile, ok := m.profiles[id]
	if !ok {
		return nil, apperror.NotFound("profile", id)
	}
	result := *profile
	return &result, nil
}

func (m *mockStore) GetProfileByEmail(_ context.Context, email string) (*model.Profile, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	for _, p := range m.profiles {
		if p.Email == email {
			result := *p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("profile", email)
}

func (m *mockStore) GetProfileByGitHubID(_ context.Context, githubID int64) (*model.Profile, error) {
	if err := m.readErr(); err != nil {
		return nil, err
	}
	for _, p := range m.profiles {
		if p.GitHubID == githubID {
			result := *p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("profile", fmt.Sprintf("github:%d", githubID))
}

// Interface checks — the services must accept this mock everywhere.
var (
	_ repository.PromptRepository    = (*mockStore)(nil)
	_ repository.RatingRepository    = (*mockStore)(nil)
	_ repository.ViewRepository      = (*mockStore)(nil)
	_ repository.AnalyticsRepository = (*mockStore)(nil)
	_ repository.ProfileRepository   = (*mockStore)(nil)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// seedPrompt creates a prompt owned by ownerID directly in the mock.
func seedPrompt(t *testing.T, store *mockStore, title, ownerID string) *model.Prompt {
	t.Helper()
	prompt := &model.Prompt{
		Title:       title,
		Description: "seeded",
		Content:     "content",
		Roles:       []string{"Developer"},
		Tasks:       []string{"Debugging"},
		CreatedBy:   ownerID,
	}
	if err := store.Create(context.Background(), prompt); err != nil {
		t.Fatalf("seeding prompt: %v", err)
	}
	return prompt
}
