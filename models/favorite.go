package models

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	MovieID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"movie_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User  User  `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Movie Movie `gorm:"constraint:OnDelete:CASCADE;" json:"movie,omitempty"`
}
