package services

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/models"
)

// MakeSlug chuẩn hóa tiêu đề thành slug URL ("Hành Trình" -> "hanh-trinh").
// Tiêu đề toàn ký hiệu cho slug rỗng thì rơi về movie-<unix-time>.
func MakeSlug(title string) string {
	s := slug.Make(title)
	if s == "" {
		s = fmt.Sprintf("movie-%d", time.Now().Unix())
	}
	return s
}

// AllocateSlug dò slug chưa dùng trong bảng movies: base, base-1, base-2...
// Phải gọi trong cùng transaction với insert phim; unique index trên
// movies.slug là chốt chặn cuối cho hai lần duyệt trùng tên chạy song song.
func AllocateSlug(tx *gorm.DB, title string) (string, error) {
	base := MakeSlug(title)
	candidate := base
	for i := 1; ; i++ {
		var count int64
		if err := tx.Model(&models.Movie{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
