package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/config"
	"github.com/vnkhanh/movie-streaming-backend/models"
	"github.com/vnkhanh/movie-streaming-backend/ws"
)

// Gửi thông báo realtime + lưu DB với thông tin navigation
func notifyComment(db *gorm.DB, userID uuid.UUID, title, message string, movieID uuid.UUID, commentID *uuid.UUID) {
	notif := models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      "reply",
		MovieID:   &movieID,
		CommentID: commentID,
	}
	db.Create(&notif)

	data := map[string]interface{}{
		"type":     "reply",
		"title":    title,
		"message":  message,
		"movie_id": movieID.String(),
		"id":       notif.ID.String(),
	}
	if commentID != nil {
		data["comment_id"] = commentID.String()
	}

	jsonData, _ := json.Marshal(data)
	ws.H.BroadcastToUser(userID.String(), websocket.TextMessage, jsonData)

	// Cập nhật badge số lượng chưa đọc
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = false", userID).Count(&count)
	ws.SendBadgeUpdate(userID.String(), count)
}

type CreateCommentRequest struct {
	MovieID  string  `json:"movie_id" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parent_id,omitempty"`
}

// Tạo bình luận / trả lời bình luận
func CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie_id không hợp lệ"})
		return
	}

	var movie models.Movie
	if err := config.DB.First(&movie, "id = ? AND is_hidden = ?", movieID, false).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phim"})
		return
	}

	comment := models.Comment{
		ID:      uuid.New(),
		MovieID: movieID,
		UserID:  userID,
		Content: req.Content,
	}

	// Trả lời: kiểm tra bình luận cha cùng phim
	var parent *models.Comment
	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parent_id không hợp lệ"})
			return
		}
		var p models.Comment
		if err := config.DB.First(&p, "id = ? AND movie_id = ?", parentID, movieID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bình luận cha"})
			return
		}
		parent = &p
		comment.ParentID = &parentID
	}

	if err := config.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo bình luận"})
		return
	}

	var user models.User
	config.DB.Select("id", "full_name").First(&user, "id = ?", userID)
	comment.User = user

	// Báo cho chủ bình luận cha khi có người trả lời
	if parent != nil && parent.UserID != userID {
		message := user.FullName + " đã trả lời bình luận của bạn trong \"" + movie.Title + "\""
		notifyComment(config.DB, parent.UserID, "Có trả lời mới", message, movieID, &comment.ID)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bình luận thành công",
		"comment": comment,
	})
}

// GetComments lấy cây bình luận của một phim (bình luận gốc + replies)
func GetComments(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movie_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie_id không hợp lệ"})
		return
	}

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 20)
	offset := (page - 1) * limit

	query := config.DB.Model(&models.Comment{}).
		Where("movie_id = ? AND parent_id IS NULL", movieID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm bình luận"})
		return
	}

	var comments []models.Comment
	if err := query.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name")
		}).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Replies.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name")
		}).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách bình luận"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       comments,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

// DeleteComment xóa bình luận của chính mình (admin xóa được mọi bình luận)
func DeleteComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id không hợp lệ"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	role := c.GetString("role")

	var comment models.Comment
	if err := config.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bình luận"})
		return
	}

	if comment.UserID != userID && role != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Bạn không có quyền xóa bình luận này"})
		return
	}

	// Xóa replies trước rồi tới bình luận
	tx := config.DB.Begin()
	if err := tx.Delete(&models.Comment{}, "parent_id = ?", commentID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bình luận"})
		return
	}
	if err := tx.Delete(&models.Comment{}, "id = ?", commentID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bình luận"})
		return
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa bình luận"})
}
