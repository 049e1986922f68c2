package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/promptnexus/promptnexus/internal/auth"
	"github.com/promptnexus/promptnexus/internal/listing"
	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
	"github.com/promptnexus/promptnexus/internal/service"
)

// PromptHandler serves the prompt catalogue: browse, detail, and the CRUD
// surface for contributors.
type PromptHandler struct {
	prompts      *service.PromptService
	interactions *service.InteractionService
	opts         listing.Options
	logger       *slog.Logger
}

func NewPromptHandler(
	prompts *service.PromptService,
	interactions *service.InteractionService,
	opts listing.Options,
	logger *slog.Logger,
) *PromptHandler {
	return &PromptHandler{
		prompts:      prompts,
		interactions: interactions,
		opts:         opts.WithDefaults(),
		logger:       logger,
	}
}

// listResponse is the browse payload: one page of prompts plus what the
// client needs to render pagination.
type listResponse struct {
	Prompts     []model.Prompt `json:"prompts"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"total_pages"`
	Total       int            `json:"total"`
	GuestCapped bool           `json:"guest_capped,omitempty"`
}

// HandleList serves GET /api/prompts?role=&task=&q=&page=.
//
// Signed-in users get the full catalogue, newest first, with role/task
// filters (ANDed), case-insensitive title search and 1-based pagination.
// Guests get a fixed-size preview and no search, filters or pagination —
// a guest request carrying any of those is redirected to the sign-in page.
func (h *PromptHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	query := r.URL.Query()

	filter := repository.PromptFilter{
		ByRole: query.Get("role"),
		ByTask: query.Get("task"),
	}
	search := query.Get("q")

	if userID == "" && (!filter.IsZero() || search != "" || query.Get("page") != "") {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	prompts, err := h.prompts.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	matched := listing.FilterByTitle(prompts, search)

	if userID == "" {
		resp := listResponse{
			Prompts:    matched,
			Page:       1,
			TotalPages: 1,
			Total:      len(matched),
		}
		if len(matched) > h.opts.GuestLimit {
			resp.Prompts = matched[:h.opts.GuestLimit]
			resp.GuestCapped = true
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	page := 1
	if raw := query.Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}
	page = listing.ClampPage(page, len(matched), h.opts.PageSize)

	writeJSON(w, http.StatusOK, listResponse{
		Prompts:    listing.Paginate(matched, page, h.opts.PageSize),
		Page:       page,
		TotalPages: listing.TotalPages(len(matched), h.opts.PageSize),
		Total:      len(matched),
	})
}

// HandleGet serves GET /api/prompts/{id}.
func (h *PromptHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.prompts.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prompt)
}

// promptRequest is the create/update payload.
type promptRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Content      string   `json:"content"`
	Roles        []string `json:"roles"`
	Tasks        []string `json:"tasks"`
	SampleOutput string   `json:"sample_output"`
}

func (req *promptRequest) toModel() *model.Prompt {
	return &model.Prompt{
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		Roles:        req.Roles,
		Tasks:        req.Tasks,
		SampleOutput: req.SampleOutput,
	}
}

// HandleCreate serves POST /api/prompts. Auth required; the owner is the
// session user, never the payload.
func (h *PromptHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid prompt JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "request body is not valid JSON",
		})
		return
	}

	prompt, err := h.prompts.Create(r.Context(), userID, req.toModel())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, prompt)
}

// HandleUpdate serves PUT /api/prompts/{id}. Only the owner may edit.
func (h *PromptHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "request body is not valid JSON",
		})
		return
	}

	prompt, err := h.prompts.Update(r.Context(), userID, r.PathValue("id"), req.toModel())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prompt)
}

// HandleDelete serves DELETE /api/prompts/{id}. Only the owner may delete.
func (h *PromptHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.prompts.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCopy serves POST /api/prompts/{id}/copy. Copy logging is
// best-effort: the response is 204 regardless, because the client already
// has the text on the clipboard and nothing actionable failed.
func (h *PromptHandler) HandleCopy(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	h.interactions.LogCopy(r.Context(), r.PathValue("id"), userID)

	w.WriteHeader(http.StatusNoContent)
}
