package repository

import (
	"github.com/smartworkplace/assistant-api/internal/models"
	"gorm.io/gorm"
)

// GormAIInteractionRepository is a GORM implementation of AIInteractionRepository
type GormAIInteractionRepository struct {
	db *gorm.DB
}

// NewAIInteractionRepository creates a new AIInteractionRepository
func NewAIInteractionRepository(db *gorm.DB) AIInteractionRepository {
	return &GormAIInteractionRepository{db: db}
}

// Create records a query/response pair
func (r *GormAIInteractionRepository) Create(interaction *models.AIInteraction) error {
	return r.db.Create(interaction).Error
}
