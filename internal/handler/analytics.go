package handler

import (
	"log/slog"
	"net/http"

	"github.com/promptnexus/promptnexus/internal/auth"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

type analyticsResponse struct {
	*model.UserAnalytics
	ContribStats model.ContribStats `json:"contrib_stats"`
}

// HandleUserAnalytics serves GET /api/me/analytics: the session user's
// dashboard — contributed prompts, interaction history, per-prompt stats,
// and the rolled-up totals over their contributions.
func (h *AnalyticsHandler) HandleUserAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	analytics, err := h.analytics.UserAnalytics(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyticsResponse{
		UserAnalytics: analytics,
		ContribStats:  service.ContribStats(analytics),
	})
}

// HandleGlobalStats serves GET /api/analytics: the aggregate view across
// the whole catalogue, one row per prompt.
func (h *AnalyticsHandler) HandleGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.GlobalStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.PromptStats{"stats": stats})
}

// HandleRecentlyRated serves GET /api/me/recently-rated: the most recent
// prompts the session user rated, newest first.
func (h *AnalyticsHandler) HandleRecentlyRated(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	prompts, err := h.analytics.RecentlyRated(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Prompt{"prompts": prompts})
}
