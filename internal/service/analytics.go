package service

import (
	"context"
	"time"

	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
)

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// AnalyticsService aggregates dashboard numbers by enumerating the relevant
// collections. Counting is plain arithmetic over fetched records; the store
// does no aggregation for us here.
type AnalyticsService struct {
	userRepo       repository.UserRepository
	taskRepo       repository.TaskRepository
	userTaskRepo   repository.UserTaskRepository
	postRepo       repository.PostRepository
	screentimeRepo repository.ScreentimeRepository
	now            func() time.Time
}

func NewAnalyticsService(
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	userTaskRepo repository.UserTaskRepository,
	postRepo repository.PostRepository,
	screentimeRepo repository.ScreentimeRepository,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:       userRepo,
		taskRepo:       taskRepo,
		userTaskRepo:   userTaskRepo,
		postRepo:       postRepo,
		screentimeRepo: screentimeRepo,
		now:            time.Now,
	}
}

func (s *AnalyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	active, err := s.userRepo.CountActiveSince(ctx, s.now().AddDate(0, 0, -7))
	if err != nil {
		return nil, apperrors.Database(err)
	}

	tasks, err := s.taskRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	completed, err := s.taskRepo.CountCompleted(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	posts, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	return &model.AnalyticsSummary{
		TotalUsers:     users,
		ActiveUsers7d:  active,
		TotalTasks:     tasks,
		CompletedTasks: completed,
		PostsCount:     posts,
	}, nil
}

func (s *AnalyticsService) TaskAnalytics(ctx context.Context) (*model.TaskAnalytics, error) {
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	counts := map[string]int{}
	order := []string{}
	for _, task := range tasks {
		category := task.Category
		if category == "" {
			category = "General"
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	categories := make([]model.CategoryCount, 0, len(order))
	for _, name := range order {
		categories = append(categories, model.CategoryCount{Name: name, Count: counts[name]})
	}

	total, err := s.userTaskRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	completed, err := s.userTaskRepo.CountCompleted(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}

	return &model.TaskAnalytics{
		Categories:         categories,
		CompletionRate:     rate,
		TotalTasksAssigned: total,
		TasksCompleted:     completed,
	}, nil
}

func (s *AnalyticsService) ScreentimeAnalytics(ctx context.Context) (*model.ScreentimeAnalytics, error) {
	records, err := s.screentimeRepo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	var total float64
	for _, record := range records {
		total += record.Duration
	}
	average := 0.0
	if len(records) > 0 {
		average = total / float64(len(records))
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, record := range records {
		if record.Timestamp.IsZero() {
			continue
		}
		day := record.Timestamp.Weekday().String()
		sums[day] += record.Duration
		counts[day]++
	}

	byDay := make([]model.DayAverage, 0, len(weekdays))
	for _, day := range weekdays {
		avg := 0.0
		if counts[day] > 0 {
			avg = sums[day] / float64(counts[day])
		}
		byDay = append(byDay, model.DayAverage{Day: day, Average: avg})
	}

	return &model.ScreentimeAnalytics{
		AverageDailyScreentime: average,
		ScreentimeByDay:        byDay,
	}, nil
}
