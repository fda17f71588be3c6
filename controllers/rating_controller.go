package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/models"
)

type RateMovieRequest struct {
	MovieID string `json:"movie_id" binding:"required"`
	Score   int    `json:"score" binding:"required,min=1,max=10"`
}

// RateMovie upsert điểm đánh giá 1-10 theo (user, movie)
func RateMovie(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req RateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Điểm đánh giá phải từ 1 đến 10"})
		return
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie_id không hợp lệ"})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var movie models.Movie
	if err := db.First(&movie, "id = ? AND is_hidden = ?", movieID, false).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phim"})
		return
	}

	var rating models.Rating
	if err := db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&rating).Error; err != nil {
		rating = models.Rating{
			UserID:  userID,
			MovieID: movieID,
			Score:   req.Score,
		}
		if err := db.Create(&rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu đánh giá"})
			return
		}
	} else {
		rating.Score = req.Score
		if err := db.Save(&rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật đánh giá"})
			return
		}
	}

	// Trả kèm điểm trung bình mới
	type ratingAgg struct {
		Avg   float64
		Count int64
	}
	var agg ratingAgg
	db.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Where("movie_id = ?", movieID).
		Scan(&agg)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Đã lưu đánh giá",
		"rating":       rating,
		"rating_avg":   agg.Avg,
		"rating_count": agg.Count,
	})
}

// DeleteRating bỏ đánh giá của chính mình
func DeleteRating(c *gin.Context) {
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
		Delete(&models.Rating{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa đánh giá"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bạn chưa đánh giá phim này"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa đánh giá"})
}
