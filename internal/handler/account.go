package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/optima-app/api-server-go/internal/config"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/service"
)

// AccountHandler serves end-user registration, login, profiles and the
// friend/follow edges.
type AccountHandler struct {
	accountService *service.AccountService
	socialService  *service.SocialService
	storageService *service.StorageService
}

func NewAccountHandler(
	accountService *service.AccountService,
	socialService *service.SocialService,
	storageService *service.StorageService,
) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		socialService:  socialService,
		storageService: storageService,
	}
}

func (h *AccountHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)

	r.Get("/users/search", h.Search)
	r.Get("/users/{id}", h.Profile)
	r.Put("/users/{id}", h.UpdateProfile)
	r.Post("/users/{id}/picture", h.UploadPicture)
	r.Post("/users/{id}/friends/{friendID}", h.AddFriend)
	r.Delete("/users/{id}/friends/{friendID}", h.RemoveFriend)
	r.Post("/users/{id}/follow/{targetID}", h.ToggleFollow)

	return r
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	user, err := h.accountService.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}

	user, err := h.accountService.Login(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.accountService.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username       *string `json:"username"`
		ProfilePicture *string `json:"profilePicture"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	err := h.accountService.UpdateProfile(r.Context(), chi.URLParam(r, "id"), model.UpdateProfileParams{
		Username:       req.Username,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AccountHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperrors.MissingRequired("file"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storageService.UploadProfilePicture(r.Context(), chi.URLParam(r, "id"), contentType, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     url,
	})
}

func (h *AccountHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	currentUserID := r.URL.Query().Get("userId")

	results, err := h.accountService.Search(r.Context(), term, currentUserID, config.UserSearchLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   results,
	})
}

func (h *AccountHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	err := h.socialService.AddFriend(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "friendID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AccountHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	err := h.socialService.RemoveFriend(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "friendID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AccountHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	following, err := h.socialService.ToggleFollow(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "targetID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"following": following,
	})
}
