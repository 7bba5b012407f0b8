package services

import (
	"errors"
	"strings"
	"time"

	"github.com/smartworkplace/assistant-api/internal/models"
)

var (
	ErrEmptyPatch            = errors.New("no fields to update")
	ErrTitleEmpty            = errors.New("title cannot be empty")
	ErrInvalidPriority       = errors.New("priority must be one of low, medium, high")
	ErrInvalidStatus         = errors.New("status must be one of pending, in_progress, completed, overdue")
	ErrInvalidEstimatedHours = errors.New("estimated_hours must be greater than zero")
	ErrInvalidActualHours    = errors.New("actual_hours cannot be negative")
)

// TaskPatch is a partial task update. A nil field is untouched; ClearDueDate
// distinguishes "set due_date to null" from "leave due_date alone".
type TaskPatch struct {
	Title          *string
	Description    *string
	Priority       *models.TaskPriority
	Status         *models.TaskStatus
	DueDate        *time.Time
	ClearDueDate   bool
	EstimatedHours *float64
	ActualHours    *float64
	Tags           *models.TagList
}

// IsEmpty reports whether the patch carries no field assignments.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Status == nil &&
		p.DueDate == nil &&
		!p.ClearDueDate &&
		p.EstimatedHours == nil &&
		p.ActualHours == nil &&
		p.Tags == nil
}

// ResolvePatch validates a patch against the current task state and produces
// the column-change set for a single atomic UPDATE.
//
// updated_at is always refreshed. A status transition into "completed" stamps
// completed_at; a transition out of it clears completed_at, so completed_at is
// present exactly while the task is completed.
func ResolvePatch(task *models.Task, patch TaskPatch, now time.Time) (map[string]interface{}, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	changes := make(map[string]interface{})

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, ErrTitleEmpty
		}
		changes["title"] = *patch.Title
	}
	if patch.Description != nil {
		changes["description"] = *patch.Description
	}
	if patch.Priority != nil {
		if !models.ValidPriority(*patch.Priority) {
			return nil, ErrInvalidPriority
		}
		changes["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		if !models.ValidStatus(*patch.Status) {
			return nil, ErrInvalidStatus
		}
		changes["status"] = *patch.Status

		if *patch.Status == models.TaskStatusCompleted && task.Status != models.TaskStatusCompleted {
			changes["completed_at"] = now
		}
		if *patch.Status != models.TaskStatusCompleted && task.Status == models.TaskStatusCompleted {
			changes["completed_at"] = nil
		}
	}
	if patch.ClearDueDate {
		changes["due_date"] = nil
	} else if patch.DueDate != nil {
		changes["due_date"] = *patch.DueDate
	}
	if patch.EstimatedHours != nil {
		if *patch.EstimatedHours <= 0 {
			return nil, ErrInvalidEstimatedHours
		}
		changes["estimated_hours"] = *patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		if *patch.ActualHours < 0 {
			return nil, ErrInvalidActualHours
		}
		changes["actual_hours"] = *patch.ActualHours
	}
	if patch.Tags != nil {
		changes["tags"] = *patch.Tags
	}

	changes["updated_at"] = now

	return changes, nil
}
