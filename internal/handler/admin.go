package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/optima-app/api-server-go/internal/config"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/middleware"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/service"
)

// AdminHandler serves the admin API. Everything past login and register sits
// behind the bearer-token gate.
type AdminHandler struct {
	adminService      *service.AdminService
	taskService       *service.TaskService
	userService       *service.UserAdminService
	moderationService *service.ModerationService
	analyticsService  *service.AnalyticsService
	authMiddleware    func(http.Handler) http.Handler
	loginRateLimiter  func(http.Handler) http.Handler
}

func NewAdminHandler(
	adminService *service.AdminService,
	taskService *service.TaskService,
	userService *service.UserAdminService,
	moderationService *service.ModerationService,
	analyticsService *service.AnalyticsService,
	authMiddleware func(http.Handler) http.Handler,
	loginRateLimiter func(http.Handler) http.Handler,
) *AdminHandler {
	return &AdminHandler{
		adminService:      adminService,
		taskService:       taskService,
		userService:       userService,
		moderationService: moderationService,
		analyticsService:  analyticsService,
		authMiddleware:    authMiddleware,
		loginRateLimiter:  loginRateLimiter,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	if h.loginRateLimiter != nil {
		r.With(h.loginRateLimiter).Post("/login", h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Post("/register", h.Register)

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)

		// Tasks
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Put("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)

		// Users
		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}/tasks", h.UserTasks)
		r.Get("/users/{id}/screentime", h.UserScreentime)
		r.Post("/users/{id}/reset-password", h.ResetPassword)
		r.Post("/users/{id}/suspend", h.SuspendUser)

		// Posts
		r.Get("/posts", h.ListPosts)
		r.Delete("/posts/{id}", h.DeletePost)

		// Analytics
		r.Get("/analytics/summary", h.AnalyticsSummary)
		r.Get("/analytics/tasks", h.TaskAnalytics)
		r.Get("/analytics/screentime", h.ScreentimeAnalytics)

		// Audit log
		r.Get("/logs", h.Logs)
	})

	return r
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	admin, tok, err := h.adminService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   tok,
		"admin":   admin.Public(),
	})
}

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		Name            string `json:"name"`
		RegistrationKey string `json:"registrationKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	admin, err := h.adminService.Register(r.Context(), req.Email, req.Password, req.Name, req.RegistrationKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"admin":   admin.Public(),
	})
}

func (h *AdminHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tasks":   tasks,
	})
}

func (h *AdminHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Reward      int64  `json:"reward"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	task, err := h.taskService.Create(r.Context(), h.adminID(r), model.CreateTaskParams{
		Title:       req.Title,
		Reward:      req.Reward,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"task":    task,
	})
}

func (h *AdminHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       *string `json:"title"`
		Reward      *int64  `json:"reward"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	err := h.taskService.Update(r.Context(), h.adminID(r), chi.URLParam(r, "id"), model.UpdateTaskParams{
		Title:       req.Title,
		Reward:      req.Reward,
		Category:    req.Category,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AdminHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.Context(), h.adminID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   users,
	})
}

func (h *AdminHandler) UserTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.userService.Tasks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tasks":   tasks,
	})
}

func (h *AdminHandler) UserScreentime(w http.ResponseWriter, r *http.Request) {
	records, err := h.userService.Screentime(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"screentime": records,
	})
}

func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	if err := h.userService.ResetPassword(r.Context(), h.adminID(r), chi.URLParam(r, "id"), req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AdminHandler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	// Absent body or field means suspend; {"suspended": false} reinstates.
	req := struct {
		Suspended *bool `json:"suspended"`
	}{}
	_ = json.NewDecoder(r.Body).Decode(&req)

	suspended := true
	if req.Suspended != nil {
		suspended = *req.Suspended
	}

	if err := h.userService.SetSuspended(r.Context(), h.adminID(r), chi.URLParam(r, "id"), suspended); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"suspended": suspended,
	})
}

func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	p := ParsePage(r, config.AdminPostPageSize)

	posts, err := h.moderationService.ListPosts(r.Context(), p.Limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"posts":   posts,
	})
}

func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.moderationService.DeletePost(r.Context(), h.adminID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AdminHandler) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *AdminHandler) TaskAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analyticsService.TaskAnalytics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

func (h *AdminHandler) ScreentimeAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analyticsService.ScreentimeAnalytics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	p := ParsePage(r, config.AdminLogPageSize)

	entries, err := h.adminService.Logs(r.Context(), p.Limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"logs":    entries,
	})
}

func (h *AdminHandler) adminID(r *http.Request) string {
	if admin := middleware.GetAdmin(r.Context()); admin != nil {
		return admin.ID
	}
	return ""
}
