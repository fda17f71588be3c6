package config

import (
	"os"
	"strconv"
	"time"
)

// CatalogDefaults là các giá trị mặc định khi xuất bản phim từ video
// người dùng gửi lên (form gửi video không thu thập các trường này).
// Cho phép override bằng ENV để không phải sửa logic transaction.
type CatalogDefaults struct {
	Country      string
	ReleaseYear  int
	Status       string
	Type         string
	EpisodeTitle string
}

func LoadCatalogDefaults() CatalogDefaults {
	d := CatalogDefaults{
		Country:      "Không xác định",
		ReleaseYear:  time.Now().Year(),
		Status:       "completed",
		Type:         "single",
		EpisodeTitle: "Episode 1",
	}

	if v := os.Getenv("CATALOG_DEFAULT_COUNTRY"); v != "" {
		d.Country = v
	}
	if v := os.Getenv("CATALOG_DEFAULT_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil && year > 0 {
			d.ReleaseYear = year
		}
	}
	if v := os.Getenv("CATALOG_DEFAULT_STATUS"); v != "" {
		d.Status = v
	}
	if v := os.Getenv("CATALOG_DEFAULT_TYPE"); v != "" {
		d.Type = v
	}
	if v := os.Getenv("CATALOG_DEFAULT_EPISODE_TITLE"); v != "" {
		d.EpisodeTitle = v
	}

	return d
}
