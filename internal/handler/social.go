package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/optima-app/api-server-go/internal/config"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/service"
)

// SocialHandler serves posts, feeds, likes and comments.
type SocialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

func (h *SocialHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreatePost)
	r.Get("/feed", h.Feed)
	r.Get("/friends", h.FriendsFeed)
	r.Get("/{id}", h.GetPost)
	r.Post("/{id}/like", h.ToggleLike)
	r.Get("/{id}/likes", h.LikeDetails)
	r.Get("/{id}/like-status", h.LikeStatus)
	r.Post("/{id}/comments", h.AddComment)
	r.Get("/{id}/comments", h.Comments)

	return r
}

func (h *SocialHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"userId"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, apperrors.MissingRequired("userId"))
		return
	}

	id, err := h.socialService.CreatePost(r.Context(), req.UserID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"postId":  id,
	})
}

func (h *SocialHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.socialService.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *SocialHandler) Feed(w http.ResponseWriter, r *http.Request) {
	p := ParsePage(r, config.FeedPageSize)

	page, err := h.socialService.Feed(r.Context(), p.Limit, p.After)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *SocialHandler) FriendsFeed(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, apperrors.MissingRequired("userId"))
		return
	}
	p := ParsePage(r, config.FriendsFeedPageSize)

	posts, err := h.socialService.FriendsFeed(r.Context(), userID, p.Limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"posts":   posts,
	})
}

func (h *SocialHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, apperrors.MissingRequired("userId"))
		return
	}

	liked, err := h.socialService.ToggleLike(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"liked":   liked,
	})
}

func (h *SocialHandler) LikeDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.socialService.LikeDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"likes":   details,
	})
}

func (h *SocialHandler) LikeStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, apperrors.MissingRequired("userId"))
		return
	}

	liked, err := h.socialService.LikeStatus(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"liked":   liked,
	})
}

func (h *SocialHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"userId"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, apperrors.MissingRequired("userId"))
		return
	}

	comment, err := h.socialService.AddComment(r.Context(), chi.URLParam(r, "id"), req.UserID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"comment": comment,
	})
}

func (h *SocialHandler) Comments(w http.ResponseWriter, r *http.Request) {
	p := ParsePage(r, config.CommentsPageSize)

	page, err := h.socialService.Comments(r.Context(), chi.URLParam(r, "id"), p.Limit, p.After)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
