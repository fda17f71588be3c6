package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/config"
	"github.com/vnkhanh/movie-streaming-backend/models"
)

// GetMovies - danh sách phim công khai (đã xuất bản, không ẩn)
// + Tìm kiếm + Lọc theo danh mục/thể loại/năm + Phân trang
func GetMovies(c *gin.Context) {
	var movies []models.Movie
	query := config.DB.Model(&models.Movie{}).Where("movies.is_hidden = ?", false)

	// --- Tìm kiếm theo tên ---
	if search := c.Query("search"); search != "" {
		query = query.Where("movies.title ILIKE ?", "%"+search+"%")
	}

	// --- Lọc theo danh mục (slug) ---
	if category := c.Query("category"); category != "" {
		query = query.
			Joins("JOIN movie_categories ON movie_categories.movie_id = movies.id").
			Joins("JOIN categories ON categories.id = movie_categories.category_id").
			Where("categories.slug = ?", category)
	}

	// --- Lọc theo thể loại (slug) ---
	if genre := c.Query("genre"); genre != "" {
		query = query.
			Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
			Joins("JOIN genres ON genres.id = movie_genres.genre_id").
			Where("genres.slug = ?", genre)
	}

	// --- Lọc theo năm phát hành ---
	if year := c.Query("year"); year != "" {
		query = query.Where("movies.release_year = ?", year)
	}

	// --- Sắp xếp ---
	switch strings.ToLower(c.DefaultQuery("sort", "newest")) {
	case "views":
		query = query.Order("movies.views DESC")
	case "likes":
		query = query.Order("movies.like_count DESC")
	default:
		query = query.Order("movies.created_at DESC")
	}

	// --- Phân trang ---
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)
	offset := (page - 1) * limit

	// --- Đếm tổng ---
	var total int64
	if err := query.Distinct("movies.id").Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm tổng phim"})
		return
	}

	// --- Lấy dữ liệu ---
	if err := query.
		Preload("Categories").
		Preload("Genres").
		Offset(offset).
		Limit(limit).
		Find(&movies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách phim"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       movies,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

// GetMovieBySlug - chi tiết phim công khai kèm tập, danh mục, thể loại,
// điểm đánh giá trung bình
func GetMovieBySlug(c *gin.Context) {
	slugValue := c.Param("slug")

	var movie models.Movie
	if err := config.DB.
		Preload("Categories").
		Preload("Genres").
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("episodes.sort_order ASC")
		}).
		First(&movie, "slug = ? AND is_hidden = ?", slugValue, false).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phim"})
		return
	}

	// Điểm đánh giá
	type ratingAgg struct {
		Avg   float64
		Count int64
	}
	var agg ratingAgg
	config.DB.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Where("movie_id = ?", movie.ID).
		Scan(&agg)

	c.JSON(http.StatusOK, gin.H{
		"movie":        movie,
		"rating_avg":   agg.Avg,
		"rating_count": agg.Count,
	})
}

// WatchMovie - gọi khi người xem mở trang xem phim, tăng lượt xem
func WatchMovie(c *gin.Context) {
	slugValue := c.Param("slug")

	var movie models.Movie
	if err := config.DB.First(&movie, "slug = ? AND is_hidden = ?", slugValue, false).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phim"})
		return
	}

	if err := config.DB.Model(&models.Movie{}).
		Where("id = ?", movie.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật lượt xem"})
		return
	}

	var episodes []models.Episode
	config.DB.Where("movie_id = ?", movie.ID).Order("sort_order ASC").Find(&episodes)

	c.JSON(http.StatusOK, gin.H{
		"movie":    movie,
		"episodes": episodes,
	})
}

// GetMoviesAdmin - danh sách phim cho admin, gồm cả phim ẩn
func GetMoviesAdmin(c *gin.Context) {
	var movies []models.Movie
	query := config.DB.Model(&models.Movie{})

	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}
	if hidden := c.Query("hidden"); hidden != "" {
		switch hidden {
		case "true":
			query = query.Where("is_hidden = ?", true)
		case "false":
			query = query.Where("is_hidden = ?", false)
		}
	}

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm tổng phim"})
		return
	}

	if err := query.
		Preload("Categories").
		Preload("Genres").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&movies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách phim"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       movies,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

// ToggleMovieHidden - admin ẩn/hiện phim khỏi trang công khai
func ToggleMovieHidden(c *gin.Context) {
	id := c.Param("id")
	var movie models.Movie
	if err := config.DB.First(&movie, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phim"})
		return
	}
	movie.IsHidden = !movie.IsHidden
	if err := config.DB.Save(&movie).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái phim"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Đã đổi trạng thái thành công",
		"is_hidden": movie.IsHidden,
	})
}
