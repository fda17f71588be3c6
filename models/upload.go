package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UploadStatusPending  = "pending"
	UploadStatusApproved = "approved"
	UploadStatusRejected = "rejected"
)

// Upload là video do người dùng gửi lên, chờ admin duyệt.
// Khi được duyệt sẽ gắn MovieID trỏ tới phim đã xuất bản;
// khi bị từ chối thì bản ghi bị xóa luôn, không lưu lại.
type Upload struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	VideoURL     string     `gorm:"type:text;not null" json:"video_url"`
	PosterURL    string     `gorm:"type:text" json:"poster_url"`
	SenderName   string     `gorm:"size:150;not null" json:"sender_name"`
	Status       string     `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"` // pending | approved
	RejectReason *string    `gorm:"type:text" json:"reject_reason,omitempty"`
	MovieID      *uuid.UUID `gorm:"type:uuid" json:"movie_id,omitempty"`
	Movie        *Movie     `gorm:"foreignKey:MovieID" json:"movie,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *Upload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
