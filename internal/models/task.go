package models

import (
	"time"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue:
		return true
	}
	return false
}

// Task is owned by exactly one user and is never visible outside that owner.
// CompletedAt is non-nil if and only if Status is "completed".
type Task struct {
	ID             uint64       `gorm:"primarykey" json:"id"`
	UserID         uint64       `gorm:"not null;index" json:"user_id"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Priority       TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DueDate        *time.Time   `json:"due_date"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	CompletedAt    *time.Time   `json:"completed_at"`
	EstimatedHours float64      `gorm:"not null;default:1.0" json:"estimated_hours"`
	ActualHours    float64      `gorm:"not null;default:0.0" json:"actual_hours"`
	Tags           TagList      `gorm:"type:text" json:"tags"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
