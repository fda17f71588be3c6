package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/movie-streaming-backend/config"
	"github.com/vnkhanh/movie-streaming-backend/models"
)

func CreateGenre(c *gin.Context) {
	var input struct {
		Name   string `json:"name" binding:"required"`
		Status *bool  `json:"status"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên thể loại bắt buộc"})
		return
	}

	slugValue := GenerateSlug(name)

	var count int64
	config.DB.Model(&models.Genre{}).
		Where("LOWER(TRIM(name)) = ? OR slug = ?", strings.ToLower(name), slugValue).
		Count(&count)

	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên hoặc slug thể loại đã tồn tại"})
		return
	}

	genre := &models.Genre{
		Name:   name,
		Slug:   slugValue,
		Status: true,
	}
	if input.Status != nil {
		genre.Status = *input.Status
	}

	if err := config.DB.Create(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo thể loại"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo thể loại thành công",
		"genre":   genre,
	})
}

func GetGenres(c *gin.Context) {
	var genres []models.Genre
	query := config.DB.Model(&models.Genre{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if status := c.Query("status"); status != "" {
		switch status {
		case "true":
			query = query.Where("status = ?", true)
		case "false":
			query = query.Where("status = ?", false)
		}
	}

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm tổng thể loại"})
		return
	}

	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách thể loại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       genres,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

func UpdateGenre(c *gin.Context) {
	id := c.Param("id")
	var genre models.Genre
	if err := config.DB.First(&genre, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy thể loại"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên thể loại bắt buộc"})
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên thể loại không được trống"})
		return
	}

	slugValue := GenerateSlug(name)

	var count int64
	config.DB.Model(&models.Genre{}).
		Where("(LOWER(TRIM(name)) = ? OR slug = ?) AND id <> ?", strings.ToLower(name), slugValue, id).
		Count(&count)

	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên thể loại đã tồn tại"})
		return
	}

	genre.Name = name
	genre.Slug = slugValue

	if err := config.DB.Save(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật thể loại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật thể loại thành công",
		"genre":   genre,
	})
}

func DeleteGenre(c *gin.Context) {
	id := c.Param("id")

	// Không xóa thể loại còn phim tham chiếu
	var count int64
	config.DB.Table("movie_genres").Where("genre_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Thể loại đang được phim sử dụng, không thể xóa"})
		return
	}

	if err := config.DB.Delete(&models.Genre{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa thể loại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Xóa thể loại thành công"})
}

func ToggleGenreStatus(c *gin.Context) {
	id := c.Param("id")
	var genre models.Genre
	if err := config.DB.First(&genre, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy thể loại"})
		return
	}
	genre.Status = !genre.Status
	if err := config.DB.Save(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái thể loại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Đã đổi trạng thái thành công",
		"status":  genre.Status,
	})
}

// Lấy danh sách thể loại đang hoạt động (cho dropdown + menu công khai)
func GetGenresPublic(c *gin.Context) {
	var genres []models.Genre
	if err := config.DB.Where("status = ?", true).Order("name ASC").Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách thể loại"})
		return
	}
	c.JSON(http.StatusOK, genres)
}
