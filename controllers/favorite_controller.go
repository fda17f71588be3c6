package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/models"
)

// Thêm phim vào danh sách yêu thích
func AddFavorite(c *gin.Context) {
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

	var movie models.Movie
	if err := db.First(&movie, "id = ?", movieID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phim"})
		return
	}

	// Kiểm tra xem đã tồn tại chưa
	var fav models.Favorite
	if err := db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&fav).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Phim đã có trong danh sách yêu thích"})
		return
	}

	newFav := models.Favorite{
		UserID:  userID,
		MovieID: movieID,
	}

	tx := db.Begin()
	if err := tx.Create(&newFav).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể thêm vào yêu thích"})
		return
	}

	// Tăng LikeCount
	if err := tx.Model(&models.Movie{}).
		Where("id = ?", movieID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật lượt thích"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Đã thêm vào yêu thích"})
}

// Bỏ yêu thích
func RemoveFavorite(c *gin.Context) {
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

	tx := db.Begin()
	result := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể bỏ yêu thích"})
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Phim không có trong danh sách yêu thích"})
		return
	}

	// Giảm LikeCount
	if err := tx.Model(&models.Movie{}).
		Where("id = ? AND like_count > 0", movieID).
		UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật lượt thích"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Đã bỏ yêu thích"})
}

// Danh sách phim yêu thích của user hiện tại
func GetFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)
	offset := (page - 1) * limit

	query := db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm danh sách yêu thích"})
		return
	}

	var favorites []models.Favorite
	if err := query.
		Preload("Movie").
		Preload("Movie.Categories").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách yêu thích"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       favorites,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

// currentUserID lấy user id từ context (set bởi AuthMiddleware)
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDValue, _ := c.Get("user_id")
	switch v := userIDValue.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
			return uuid.Nil, false
		}
		return id, true
	case uuid.UUID:
		return v, true
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không tìm thấy thông tin người dùng"})
		return uuid.Nil, false
	}
}
