package models

import (
	"time"
)

// AIInteraction records a single exchange with the assistant.
type AIInteraction struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	UserID          uint64    `gorm:"not null;index" json:"user_id"`
	Query           string    `gorm:"type:text;not null" json:"query"`
	Response        string    `gorm:"type:text;not null" json:"response"`
	InteractionType string    `gorm:"type:varchar(20);not null;default:'chat'" json:"interaction_type"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
