package repository

import (
	"time"

	"github.com/smartworkplace/assistant-api/internal/models"
	"github.com/smartworkplace/assistant-api/internal/utils"
)

// TaskRepository defines the interface for task data access. Every read and
// write is scoped by owner; a task belonging to another user is
// indistinguishable from one that does not exist.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID for the given owner
	FindByID(id, userID uint64) (*models.Task, error)

	// ListByOwner retrieves a page of the owner's tasks, newest first
	ListByOwner(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// AllByOwner retrieves every task of the owner, newest first
	AllByOwner(userID uint64) ([]models.Task, error)

	// RecentByOwner retrieves the owner's most recently updated tasks
	RecentByOwner(userID uint64, limit int) ([]models.Task, error)

	// ApplyPatch applies a resolved column-change set to a single task in one
	// atomic statement keyed by id and owner
	ApplyPatch(id, userID uint64, changes map[string]interface{}) error

	// Delete removes a task permanently; reports whether a row matched
	Delete(id, userID uint64) (bool, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds an active user by email
	FindByEmail(email string) (*models.User, error)

	// RecordLogin stamps the user's last login time
	RecordLogin(id uint64, at time.Time) error
}

// AIInteractionRepository stores assistant exchanges
type AIInteractionRepository interface {
	// Create records a query/response pair
	Create(interaction *models.AIInteraction) error
}
