package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lịch sử xem phim
type WatchHistory struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_movie" json:"user_id"`
	MovieID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_movie" json:"movie_id"`

	LastPosition   int        `json:"last_position"` // Vị trí xem cuối (giây)
	Duration       int        `json:"duration"`      // Tổng thời lượng tập phim (giây)
	Completed      bool       `gorm:"default:false" json:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	LastWatchedAt  time.Time  `gorm:"autoUpdateTime" json:"last_watched_at"`
	FirstWatchedAt time.Time  `gorm:"autoCreateTime" json:"first_watched_at"`

	// Khóa ngoại
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"movie"`
}

func (w *WatchHistory) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
