package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/models"
)

type UpdateHistoryRequest struct {
	MovieID      string `json:"movie_id" binding:"required"`
	LastPosition int    `json:"last_position"`
	Duration     int    `json:"duration"`
	Completed    bool   `json:"completed"`
}

// UpdateWatchHistory upsert vị trí xem theo (user, movie)
func UpdateWatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie_id không hợp lệ"})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var movie models.Movie
	if err := db.First(&movie, "id = ?", movieID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phim"})
		return
	}

	var history models.WatchHistory
	err = db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&history).Error
	if err != nil {
		// Chưa có thì tạo mới
		history = models.WatchHistory{
			UserID:       userID,
			MovieID:      movieID,
			LastPosition: req.LastPosition,
			Duration:     req.Duration,
			Completed:    req.Completed,
		}
		if req.Completed {
			now := time.Now()
			history.CompletedAt = &now
		}
		if err := db.Create(&history).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu lịch sử xem"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Đã lưu lịch sử xem", "history": history})
		return
	}

	history.LastPosition = req.LastPosition
	if req.Duration > 0 {
		history.Duration = req.Duration
	}
	if req.Completed && !history.Completed {
		history.Completed = true
		now := time.Now()
		history.CompletedAt = &now
	}

	if err := db.Save(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật lịch sử xem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã cập nhật lịch sử xem", "history": history})
}

// GetWatchHistory danh sách xem gần nhất của user hiện tại
func GetWatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)
	offset := (page - 1) * limit

	query := db.Model(&models.WatchHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm lịch sử xem"})
		return
	}

	var histories []models.WatchHistory
	if err := query.
		Preload("Movie").
		Offset(offset).
		Limit(limit).
		Order("last_watched_at DESC").
		Find(&histories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy lịch sử xem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       histories,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

// DeleteWatchHistory xóa một mục lịch sử xem
func DeleteWatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	movieID, err := uuid.Parse(c.Param("movie_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie_id không hợp lệ"})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	result := db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.WatchHistory{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa lịch sử xem"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy lịch sử xem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa lịch sử xem"})
}
