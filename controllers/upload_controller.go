package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/config"
	"github.com/vnkhanh/movie-streaming-backend/models"
	"github.com/vnkhanh/movie-streaming-backend/services"
	"github.com/vnkhanh/movie-streaming-backend/ws"
)

var moderation *services.ModerationService

// InitModerationService khởi tạo service kiểm duyệt dùng chung cho các handler
func InitModerationService(db *gorm.DB) {
	moderation = services.NewModerationService(db, services.NewSupabaseMediaStore(), config.LoadCatalogDefaults())
}

// SubmitUpload nhận video ẩn danh từ người xem (không cần đăng nhập)
func SubmitUpload(c *gin.Context) {
	video, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file video đính kèm"})
		return
	}

	in := services.SubmitInput{
		Title:       c.PostForm("title"),
		SenderName:  c.PostForm("sender_name"),
		Description: c.PostForm("description"),
		Video:       video,
	}
	if poster, err := c.FormFile("poster"); err == nil {
		in.Poster = poster
	}

	upload, err := moderation.Submit(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notifyAdminsNewUpload(upload)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Gửi video thành công, vui lòng chờ duyệt",
		"upload":  upload,
	})
}

// Báo cho admin có video mới chờ duyệt: lưu notification + đẩy realtime
func notifyAdminsNewUpload(upload *models.Upload) {
	db := config.DB

	var admins []models.User
	if err := db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		return
	}

	for _, admin := range admins {
		noti := models.Notification{
			UserID:   admin.ID,
			Title:    "Video mới chờ duyệt",
			Message:  upload.SenderName + " đã gửi video \"" + upload.Title + "\"",
			Type:     "upload",
			UploadID: &upload.ID,
		}
		db.Create(&noti)

		var count int64
		db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = false", admin.ID).
			Count(&count)
		ws.SendBadgeUpdate(admin.ID.String(), count)
	}

	ws.NotifyNewUpload(upload.ID.String(), upload.Title, upload.SenderName)
}

// AttachPosterToUpload gắn poster cho video đang chờ duyệt
func AttachPosterToUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id không hợp lệ"})
		return
	}

	poster, err := c.FormFile("poster")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file poster đính kèm"})
		return
	}

	upload, err := moderation.AttachPoster(id, poster)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gắn poster thành công",
		"upload":  upload,
	})
}

// GetUploads trả danh sách video gửi lên cho trang admin
func GetUploads(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)
	status := c.Query("status")

	uploads, total, err := moderation.List(status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách video gửi lên"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       uploads,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

// ApproveUpload duyệt video: xuất bản thành phim trong catalog
func ApproveUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id không hợp lệ"})
		return
	}

	categoryIDs, ok := parseUUIDArray(c, "category_ids[]")
	if !ok {
		return
	}
	genreIDs, ok := parseUUIDArray(c, "genre_ids[]")
	if !ok {
		return
	}

	in := services.ApproveInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		CategoryIDs: categoryIDs,
		GenreIDs:    genreIDs,
	}
	if poster, err := c.FormFile("poster"); err == nil {
		in.Poster = poster
	}

	upload, movie, err := moderation.Approve(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Duyệt video thành công",
		"upload":  upload,
		"movie":   movie,
	})
}

// RejectUpload từ chối video đang chờ duyệt
func RejectUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id không hợp lệ"})
		return
	}

	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lý do từ chối bắt buộc"})
		return
	}

	upload, err := moderation.Reject(id, input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Bản ghi đã bị xóa, lý do chỉ trả về một lần ở đây
	c.JSON(http.StatusOK, gin.H{
		"message": "Đã từ chối video",
		"upload":  upload,
	})
}

// DeleteUpload rút lại video đang chờ duyệt
func DeleteUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id không hợp lệ"})
		return
	}

	if err := moderation.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa video gửi lên"})
}

// UpdateApprovedUpload sửa tiêu đề/mô tả/poster video đã duyệt,
// đồng bộ sang phim đã xuất bản (slug giữ nguyên)
func UpdateApprovedUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id không hợp lệ"})
		return
	}

	in := services.EditInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if poster, err := c.FormFile("poster"); err == nil {
		in.Poster = poster
	}

	upload, err := moderation.Edit(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật video thành công",
		"upload":  upload,
	})
}

// TakedownUpload gỡ video đã duyệt cùng phim đã xuất bản
func TakedownUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id không hợp lệ"})
		return
	}

	if err := moderation.DeleteApproved(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã gỡ video và phim đã xuất bản"})
}

// parseUUIDArray đọc mảng uuid từ form, trả ok=false nếu có id sai định dạng
func parseUUIDArray(c *gin.Context, field string) ([]uuid.UUID, bool) {
	raw := c.PostFormArray(field)
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": field + " chứa id không hợp lệ: " + s})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
