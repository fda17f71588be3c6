package models

import (
	"time"

	"github.com/google/uuid"
)

// Điểm đánh giá 1-10, mỗi user một phim một điểm
type Rating struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	MovieID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"movie_id"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  User  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Movie Movie `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
