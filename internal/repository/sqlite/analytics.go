package sqlite

import (
	"context"
	"fmt"

	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// compile-time check that *DB implements repository.AnalyticsRepository
var _ repository.AnalyticsRepository = (*DB)(nil)

// ListPromptStats reads every row of the aggregate view. The view is
// recomputed by the store on each read, so the numbers always reflect the
// current ratings and copy events.
func (db *DB) ListPromptStats(ctx context.Context) ([]model.PromptStats, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT prompt_id, avg_rating, ratings_count, total_views, total_copies
		 FROM view_prompt_analytics`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing prompt stats: %w", err)
	}
	defer rows.Close()

	var stats []model.PromptStats
	for rows.Next() {
		var s model.PromptStats
		if err := rows.Scan(&s.PromptID, &s.AvgRating, &s.RatingsCount, &s.TotalViews, &s.TotalCopies); err != nil {
			return nil, fmt.Errorf("sqlite: scanning prompt stats row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating prompt stats: %w", err)
	}

	return stats, nil
}
