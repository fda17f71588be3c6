package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MovieStatusCompleted = "completed" // đã hoàn thành
	MovieStatusOngoing   = "ongoing"   // đang chiếu

	MovieTypeSingle = "single" // phim lẻ
	MovieTypeSeries = "series" // phim bộ
)

type Movie struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Slug          string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	PosterURL     string    `gorm:"type:text" json:"poster_url"`
	BackgroundURL string    `gorm:"type:text" json:"background_url"`
	ReleaseYear   int       `json:"release_year"`
	Country       string    `gorm:"size:100" json:"country"`
	Status        string    `gorm:"type:VARCHAR(20);default:'completed'" json:"status"` // completed | ongoing
	Type          string    `gorm:"type:VARCHAR(20);default:'single'" json:"type"`      // single | series
	IsHidden      bool      `gorm:"default:false" json:"is_hidden"`
	Views         int64     `gorm:"default:0" json:"views"`
	LikeCount     int64     `gorm:"default:0" json:"like_count"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Categories []Category `gorm:"many2many:movie_categories" json:"categories"`
	Genres     []Genre    `gorm:"many2many:movie_genres" json:"genres"`
	Episodes   []Episode  `gorm:"foreignKey:MovieID" json:"episodes"`
}

func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
