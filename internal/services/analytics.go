package services

import (
	"math"
	"time"

	"github.com/smartworkplace/assistant-api/internal/constants"
	"github.com/smartworkplace/assistant-api/internal/models"
)

// TaskStats holds per-status counts over a user's full task set.
// Overdue tasks count toward the total only.
type TaskStats struct {
	TotalTasks      int `json:"total_tasks"`
	CompletedTasks  int `json:"completed_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	PendingTasks    int `json:"pending_tasks"`

	// AvgCompletionTime is the mean of actual_hours over completed tasks,
	// null when nothing has been completed yet.
	AvgCompletionTime *float64 `json:"avg_completion_time"`
}

// TrendPoint is one calendar day of creation/completion activity.
type TrendPoint struct {
	Date           string `json:"date"`
	TasksCreated   int    `json:"tasks_created"`
	TasksCompleted int    `json:"tasks_completed"`
}

// AnalyticsSnapshot is computed on demand and never persisted.
type AnalyticsSnapshot struct {
	Stats             TaskStats    `json:"stats"`
	Trends            []TrendPoint `json:"trends"`
	ProductivityScore float64      `json:"productivity_score"`
}

// AnalyticsEngine derives aggregate productivity statistics from a task set.
type AnalyticsEngine struct{}

// NewAnalyticsEngine creates a new AnalyticsEngine
func NewAnalyticsEngine() *AnalyticsEngine {
	return &AnalyticsEngine{}
}

// Snapshot computes statistics, the trailing 7-day trend and the productivity
// score for the given tasks. Trend days are UTC calendar dates inclusive of
// today; all 7 are emitted, zero-filled when nothing happened. The score only
// rewards days with activity, so an empty task set scores 0.
func (e *AnalyticsEngine) Snapshot(tasks []models.Task, now time.Time) AnalyticsSnapshot {
	stats := TaskStats{TotalTasks: len(tasks)}

	var completedHours float64
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusCompleted:
			stats.CompletedTasks++
			completedHours += task.ActualHours
		case models.TaskStatusInProgress:
			stats.InProgressTasks++
		case models.TaskStatusPending:
			stats.PendingTasks++
		}
	}
	if stats.CompletedTasks > 0 {
		avg := completedHours / float64(stats.CompletedTasks)
		stats.AvgCompletionTime = &avg
	}

	trends := e.trendWindow(tasks, now)

	activeDays := 0
	for _, point := range trends {
		if point.TasksCreated > 0 || point.TasksCompleted > 0 {
			activeDays++
		}
	}

	completionRate := 0.0
	if stats.TotalTasks > 0 {
		completionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}
	score := math.Min(100, completionRate+float64(activeDays*constants.TrendEntryScoreWeight))

	return AnalyticsSnapshot{
		Stats:             stats,
		Trends:            trends,
		ProductivityScore: math.Round(score*10) / 10,
	}
}

// trendWindow buckets creations by created_at date and completions by
// completed_at date across the trailing window.
func (e *AnalyticsEngine) trendWindow(tasks []models.Task, now time.Time) []TrendPoint {
	today := dateOf(now)
	start := today.AddDate(0, 0, -(constants.TrendWindowDays - 1))

	points := make([]TrendPoint, constants.TrendWindowDays)
	index := make(map[string]*TrendPoint, constants.TrendWindowDays)
	for i := range points {
		day := start.AddDate(0, 0, i)
		points[i].Date = day.Format("2006-01-02")
		index[points[i].Date] = &points[i]
	}

	for _, task := range tasks {
		if point, ok := index[dateOf(task.CreatedAt).Format("2006-01-02")]; ok {
			point.TasksCreated++
		}
		if task.CompletedAt != nil {
			if point, ok := index[dateOf(*task.CompletedAt).Format("2006-01-02")]; ok {
				point.TasksCompleted++
			}
		}
	}

	return points
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
