package repository

import (
	"github.com/smartworkplace/assistant-api/internal/database"
	"github.com/smartworkplace/assistant-api/internal/models"
	"github.com/smartworkplace/assistant-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID for the given owner. Returns
// gorm.ErrRecordNotFound for both absent rows and rows owned by someone else.
func (r *GormTaskRepository) FindByID(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner retrieves a page of the owner's tasks ordered by creation time descending
func (r *GormTaskRepository) ListByOwner(userID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// AllByOwner retrieves every task of the owner ordered by creation time descending
func (r *GormTaskRepository) AllByOwner(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// RecentByOwner retrieves the owner's most recently updated tasks
func (r *GormTaskRepository) RecentByOwner(userID uint64, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ApplyPatch applies a column-change set in a single UPDATE keyed by id and
// owner, so the ownership check and the mutation cannot race. Zero affected
// rows means the task does not exist for this owner.
func (r *GormTaskRepository) ApplyPatch(id, userID uint64, changes map[string]interface{}) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a task permanently
func (r *GormTaskRepository) Delete(id, userID uint64) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
