package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartworkplace/assistant-api/internal/models"
	"github.com/smartworkplace/assistant-api/internal/repository"
	"github.com/smartworkplace/assistant-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
)

// TaskService handles the task lifecycle: creation defaults, patch resolution,
// owner-scoped persistence and derived analytics.
type TaskService struct {
	taskRepo  repository.TaskRepository
	analytics *AnalyticsEngine
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, analytics *AnalyticsEngine) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		analytics: analytics,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID         uint64
	Title          string
	Description    string
	Priority       *models.TaskPriority
	DueDate        *time.Time
	EstimatedHours *float64
	Tags           models.TagList
}

// CreateTask creates a new task. New tasks always start out pending with
// medium priority and one estimated hour unless the input says otherwise.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	priority := models.TaskPriorityMedium
	if input.Priority != nil {
		if !models.ValidPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		priority = *input.Priority
	}

	estimatedHours := 1.0
	if input.EstimatedHours != nil {
		if *input.EstimatedHours <= 0 {
			return nil, ErrInvalidEstimatedHours
		}
		estimatedHours = *input.EstimatedHours
	}

	tags := input.Tags
	if tags == nil {
		tags = models.TagList{}
	}

	task := &models.Task{
		UserID:         input.UserID,
		Title:          input.Title,
		Description:    input.Description,
		Priority:       priority,
		Status:         models.TaskStatusPending,
		DueDate:        input.DueDate,
		EstimatedHours: estimatedHours,
		ActualHours:    0,
		Tags:           tags,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a single task scoped to its owner
func (s *TaskService) GetTask(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns a page of the user's tasks, newest first
func (s *TaskService) ListTasks(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListByOwner(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask applies a partial update to a task. The patch is resolved against
// the stored task and written in a single owner-scoped statement.
func (s *TaskService) UpdateTask(userID, taskID uint64, patch TaskPatch) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	changes, err := ResolvePatch(task, patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.ApplyPatch(taskID, userID, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.FindByID(taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return updated, nil
}

// DeleteTask permanently removes a task owned by the user
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	deleted, err := s.taskRepo.Delete(taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// GetAnalytics computes the analytics snapshot over the user's full task set
func (s *TaskService) GetAnalytics(userID uint64) (AnalyticsSnapshot, error) {
	tasks, err := s.taskRepo.AllByOwner(userID)
	if err != nil {
		return AnalyticsSnapshot{}, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return s.analytics.Snapshot(tasks, time.Now().UTC()), nil
}
