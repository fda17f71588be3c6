package services

import (
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/config"
	"github.com/vnkhanh/movie-streaming-backend/models"
)

// ModerationService điều phối vòng đời video người dùng gửi lên:
// submit -> (approve | reject | xóa khi đang chờ) -> (edit | takedown).
// Mọi upload/xóa file storage đều nằm NGOÀI transaction DB.
type ModerationService struct {
	DB        *gorm.DB
	Media     MediaStore
	Publisher *Publisher
}

func NewModerationService(db *gorm.DB, media MediaStore, defaults config.CatalogDefaults) *ModerationService {
	return &ModerationService{
		DB:        db,
		Media:     media,
		Publisher: NewPublisher(db, defaults),
	}
}

type SubmitInput struct {
	Title       string
	SenderName  string
	Description string
	Video       *multipart.FileHeader
	Poster      *multipart.FileHeader // tùy chọn, có thể gắn sau
}

// Submit nhận video ẩn danh, tạo bản ghi chờ duyệt.
func (s *ModerationService) Submit(in SubmitInput) (*models.Upload, error) {
	title := strings.TrimSpace(in.Title)
	sender := strings.TrimSpace(in.SenderName)

	if in.Video == nil {
		return nil, &ValidationError{Message: "Thiếu file video"}
	}
	if title == "" {
		return nil, &ValidationError{Message: "Tiêu đề không được trống"}
	}
	if sender == "" {
		return nil, &ValidationError{Message: "Tên người gửi không được trống"}
	}

	// Upload media trước, chỉ ghi DB với URL đã chốt
	videoURL, err := s.Media.Store(in.Video, true)
	if err != nil {
		return nil, &MediaUploadError{Err: err}
	}

	posterURL := ""
	if in.Poster != nil {
		posterURL, err = s.Media.Store(in.Poster, false)
		if err != nil {
			// video vừa upload sẽ mồ côi nếu không dọn ngay
			s.cleanupMedia(videoURL)
			return nil, &MediaUploadError{Err: err}
		}
	}

	upload := models.Upload{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		VideoURL:    videoURL,
		PosterURL:   posterURL,
		SenderName:  sender,
		Status:      models.UploadStatusPending,
	}
	if err := s.DB.Create(&upload).Error; err != nil {
		s.cleanupMedia(videoURL, posterURL)
		return nil, err
	}
	return &upload, nil
}

// AttachPoster gắn/thay poster cho video đang chờ duyệt.
func (s *ModerationService) AttachPoster(id uuid.UUID, poster *multipart.FileHeader) (*models.Upload, error) {
	if poster == nil {
		return nil, &ValidationError{Message: "Thiếu file poster"}
	}

	upload, err := s.findUpload(id)
	if err != nil {
		return nil, err
	}
	if upload.Status != models.UploadStatusPending {
		return nil, &InvalidStateError{Message: "Chỉ gắn poster được cho video đang chờ duyệt"}
	}

	url, err := s.Media.Store(poster, false)
	if err != nil {
		return nil, &MediaUploadError{Err: err}
	}

	oldPoster := upload.PosterURL
	upload.PosterURL = url
	if err := s.DB.Save(upload).Error; err != nil {
		s.cleanupMedia(url)
		return nil, err
	}
	s.cleanupMedia(oldPoster)
	return upload, nil
}

// List trả danh sách video gửi lên cho trang admin, lọc theo trạng thái.
func (s *ModerationService) List(status string, page, limit int) ([]models.Upload, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.DB.Model(&models.Upload{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var uploads []models.Upload
	if err := query.
		Preload("Movie").
		Offset((page - 1) * limit).
		Limit(limit).
		Order("created_at DESC").
		Find(&uploads).Error; err != nil {
		return nil, 0, err
	}
	return uploads, total, nil
}

type ApproveInput struct {
	Title       string
	Description string
	CategoryIDs []uuid.UUID
	GenreIDs    []uuid.UUID
	Poster      *multipart.FileHeader // thay poster ngay khi duyệt, tùy chọn
}

// Approve duyệt video đang chờ: xuất bản phim + cập nhật trạng thái upload
// trong cùng một transaction. Validate xong hết mới upload poster, upload
// poster xong mới mở transaction.
func (s *ModerationService) Approve(id uuid.UUID, in ApproveInput) (*models.Upload, *models.Movie, error) {
	upload, err := s.findUpload(id)
	if err != nil {
		return nil, nil, err
	}
	if upload.Status != models.UploadStatusPending {
		return nil, nil, &InvalidStateError{Message: "Video không ở trạng thái chờ duyệt"}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, nil, &ValidationError{Message: "Tiêu đề không được trống"}
	}
	if len(in.CategoryIDs) == 0 {
		return nil, nil, &ValidationError{Message: "Phải chọn ít nhất một danh mục"}
	}

	// Id gửi trùng chỉ tính một lần, mỗi id còn lại phải tồn tại
	categoryIDs := dedupeIDs(in.CategoryIDs)
	var count int64
	if err := s.DB.Model(&models.Category{}).Where("id IN ?", categoryIDs).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count != int64(len(categoryIDs)) {
		return nil, nil, &ValidationError{Message: "Danh mục không tồn tại"}
	}

	description := strings.TrimSpace(in.Description)

	posterURL := upload.PosterURL
	uploadedPoster := ""
	if in.Poster != nil {
		url, err := s.Media.Store(in.Poster, false)
		if err != nil {
			return nil, nil, &MediaUploadError{Err: err}
		}
		posterURL = url
		uploadedPoster = url
	}

	pubIn := PublishInput{
		Title:       title,
		Description: description,
		PosterURL:   posterURL,
		VideoURL:    upload.VideoURL,
		CategoryIDs: categoryIDs,
		GenreIDs:    in.GenreIDs,
	}

	var movie *models.Movie
	approveOnce := func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			m, err := s.Publisher.publishTx(tx, pubIn)
			if err != nil {
				return err
			}
			upload.Title = title
			upload.Description = description
			upload.PosterURL = posterURL
			upload.Status = models.UploadStatusApproved
			upload.MovieID = &m.ID
			if err := tx.Save(upload).Error; err != nil {
				return err
			}
			movie = m
			return nil
		})
	}

	err = approveOnce()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = approveOnce()
	}
	if err != nil {
		// rollback xong thì poster mới upload thành mồ côi, dọn luôn
		s.cleanupMedia(uploadedPoster)
		return nil, nil, &TransactionError{Err: err}
	}
	return upload, movie, nil
}

// Reject từ chối video đang chờ: dọn media best-effort rồi xóa bản ghi.
// Lý do chỉ trả về một lần trong response, không lưu lại.
func (s *ModerationService) Reject(id uuid.UUID, reason string) (*models.Upload, error) {
	upload, err := s.findUpload(id)
	if err != nil {
		return nil, err
	}
	if upload.Status != models.UploadStatusPending {
		return nil, &InvalidStateError{Message: "Video không ở trạng thái chờ duyệt"}
	}

	s.cleanupMedia(upload.VideoURL, upload.PosterURL)

	if err := s.DB.Delete(&models.Upload{}, "id = ?", upload.ID).Error; err != nil {
		return nil, err
	}

	r := strings.TrimSpace(reason)
	upload.Status = models.UploadStatusRejected
	upload.RejectReason = &r
	return upload, nil
}

// Delete rút lại video đang chờ duyệt. Video đã duyệt phải đi đường
// takedown (DeleteApproved) để gỡ cả phim đã xuất bản.
func (s *ModerationService) Delete(id uuid.UUID) error {
	upload, err := s.findUpload(id)
	if err != nil {
		return err
	}
	if upload.Status == models.UploadStatusApproved {
		return &InvalidStateError{Message: "Video đã duyệt, phải gỡ qua takedown"}
	}

	s.cleanupMedia(upload.VideoURL, upload.PosterURL)
	return s.DB.Delete(&models.Upload{}, "id = ?", upload.ID).Error
}

type EditInput struct {
	Title       string
	Description string
	Poster      *multipart.FileHeader
}

// Edit sửa tiêu đề/mô tả/poster của video đã duyệt và đồng bộ sang phim
// đã xuất bản. Slug giữ nguyên để URL công khai ổn định.
func (s *ModerationService) Edit(id uuid.UUID, in EditInput) (*models.Upload, error) {
	upload, err := s.findUpload(id)
	if err != nil {
		return nil, err
	}
	if upload.Status != models.UploadStatusApproved {
		return nil, &InvalidStateError{Message: "Chỉ sửa được video đã duyệt"}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &ValidationError{Message: "Tiêu đề không được trống"}
	}
	description := strings.TrimSpace(in.Description)

	oldPoster := upload.PosterURL
	posterURL := upload.PosterURL
	uploadedPoster := ""
	if in.Poster != nil {
		url, err := s.Media.Store(in.Poster, false)
		if err != nil {
			return nil, &MediaUploadError{Err: err}
		}
		posterURL = url
		uploadedPoster = url
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		upload.Title = title
		upload.Description = description
		upload.PosterURL = posterURL
		if err := tx.Save(upload).Error; err != nil {
			return err
		}
		if upload.MovieID != nil {
			if err := tx.Model(&models.Movie{}).
				Where("id = ?", *upload.MovieID).
				Updates(map[string]interface{}{
					"title":       title,
					"description": description,
					"poster_url":  posterURL,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.cleanupMedia(uploadedPoster)
		return nil, &TransactionError{Err: err}
	}

	if uploadedPoster != "" && oldPoster != posterURL {
		s.cleanupMedia(oldPoster)
	}
	return upload, nil
}

// DeleteApproved gỡ video đã duyệt cùng phim đã xuất bản: xóa liên kết
// danh mục/thể loại, tập phim, phim rồi mới tới bản ghi upload, tất cả
// trong một transaction. Media dọn sau cùng, best-effort.
func (s *ModerationService) DeleteApproved(id uuid.UUID) error {
	upload, err := s.findUpload(id)
	if err != nil {
		return err
	}
	if upload.Status != models.UploadStatusApproved {
		return &InvalidStateError{Message: "Video chưa được duyệt"}
	}

	var movie models.Movie
	hasMovie := false
	if upload.MovieID != nil {
		if err := s.DB.Preload("Episodes").First(&movie, "id = ?", *upload.MovieID).Error; err == nil {
			hasMovie = true
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if hasMovie {
			// Thứ tự phụ thuộc: liên kết -> tập -> phim
			if err := tx.Model(&movie).Association("Categories").Clear(); err != nil {
				return err
			}
			if err := tx.Model(&movie).Association("Genres").Clear(); err != nil {
				return err
			}
			if err := tx.Delete(&models.Episode{}, "movie_id = ?", movie.ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Movie{}, "id = ?", movie.ID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Upload{}, "id = ?", upload.ID).Error
	})
	if err != nil {
		return &TransactionError{Err: err}
	}

	urls := []string{upload.VideoURL, upload.PosterURL}
	if hasMovie {
		urls = append(urls, movie.PosterURL, movie.BackgroundURL)
		for _, ep := range movie.Episodes {
			urls = append(urls, ep.VideoURL)
		}
	}
	s.cleanupMedia(urls...)
	return nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *ModerationService) findUpload(id uuid.UUID) (*models.Upload, error) {
	var upload models.Upload
	if err := s.DB.First(&upload, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Không tìm thấy video gửi lên"}
		}
		return nil, err
	}
	return &upload, nil
}

// cleanupMedia xóa file trên storage. Lỗi chỉ log, không bao giờ chặn
// nghiệp vụ; xóa trùng URL hoặc file đã mất coi như thành công.
func (s *ModerationService) cleanupMedia(urls ...string) {
	seen := make(map[string]bool)
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		if err := s.Media.Remove(u); err != nil {
			log.Printf("Không xóa được file trên storage (%s): %v", u, err)
		}
	}
}
