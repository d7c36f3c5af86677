package model

// AnalyticsSummary is the dashboard headline view.
type AnalyticsSummary struct {
	TotalUsers     int `json:"total_users"`
	ActiveUsers7d  int `json:"active_users_7d"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PostsCount     int `json:"posts_count"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TaskAnalytics covers template categories and assignment completion.
// CompletionRate is a percentage in [0, 100].
type TaskAnalytics struct {
	Categories         []CategoryCount `json:"categories"`
	CompletionRate     float64         `json:"completion_rate"`
	TotalTasksAssigned int             `json:"total_tasks_assigned"`
	TasksCompleted     int             `json:"tasks_completed"`
}

type DayAverage struct {
	Day     string  `json:"day"`
	Average float64 `json:"average"`
}

// ScreentimeAnalytics reports minutes averaged overall and per weekday.
type ScreentimeAnalytics struct {
	AverageDailyScreentime float64      `json:"average_daily_screentime"`
	ScreentimeByDay        []DayAverage `json:"screentime_by_day"`
}
