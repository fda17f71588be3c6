package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Episode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MovieID   uuid.UUID `gorm:"type:uuid;not null;index" json:"movie_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	VideoURL  string    `gorm:"type:text;not null" json:"video_url"`
	SortOrder int       `gorm:"default:1" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
