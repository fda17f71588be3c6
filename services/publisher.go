package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/movie-streaming-backend/config"
	"github.com/vnkhanh/movie-streaming-backend/models"
)

// Publisher tạo phim từ video đã duyệt: Movie + Episode + liên kết
// danh mục/thể loại trong một transaction duy nhất.
type Publisher struct {
	DB       *gorm.DB
	Defaults config.CatalogDefaults
}

func NewPublisher(db *gorm.DB, defaults config.CatalogDefaults) *Publisher {
	return &Publisher{DB: db, Defaults: defaults}
}

type PublishInput struct {
	Title       string
	Description string
	PosterURL   string
	VideoURL    string
	CategoryIDs []uuid.UUID
	GenreIDs    []uuid.UUID
}

// Publish chạy publishTx trong transaction riêng.
// Nếu đụng unique index trên slug (hai lần duyệt trùng tên chạy song song)
// thì thử lại đúng một lần với slug dò mới.
func (p *Publisher) Publish(in PublishInput) (*models.Movie, error) {
	movie, err := p.publishOnce(in)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		movie, err = p.publishOnce(in)
	}
	if err != nil {
		return nil, &TransactionError{Err: err}
	}
	return movie, nil
}

func (p *Publisher) publishOnce(in PublishInput) (*models.Movie, error) {
	var movie *models.Movie
	err := p.DB.Transaction(func(tx *gorm.DB) error {
		m, err := p.publishTx(tx, in)
		if err != nil {
			return err
		}
		movie = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movie, nil
}

// publishTx tạo toàn bộ catalog entry bên trong transaction có sẵn,
// để workflow duyệt có thể cập nhật Upload trong cùng transaction.
// Danh mục đã được workflow validate trước; thể loại không tồn tại bị
// bỏ qua lặng lẽ, không làm publish thất bại.
func (p *Publisher) publishTx(tx *gorm.DB, in PublishInput) (*models.Movie, error) {
	slugValue, err := AllocateSlug(tx, in.Title)
	if err != nil {
		return nil, err
	}

	movie := models.Movie{
		ID:          uuid.New(),
		Title:       in.Title,
		Slug:        slugValue,
		Description: in.Description,
		PosterURL:   in.PosterURL,
		ReleaseYear: p.Defaults.ReleaseYear,
		Country:     p.Defaults.Country,
		Status:      p.Defaults.Status,
		Type:        p.Defaults.Type,
		IsHidden:    false,
		Views:       0,
	}
	if err := tx.Create(&movie).Error; err != nil {
		return nil, err
	}

	// Gắn danh mục
	var categories []models.Category
	if err := tx.Where("id IN ?", in.CategoryIDs).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, errors.New("phim xuất bản phải có ít nhất một danh mục")
	}
	if err := tx.Model(&movie).Association("Categories").Append(&categories); err != nil {
		return nil, err
	}
	movie.Categories = categories

	// Một tập duy nhất cho video người dùng gửi
	episode := models.Episode{
		ID:        uuid.New(),
		MovieID:   movie.ID,
		Title:     p.Defaults.EpisodeTitle,
		VideoURL:  in.VideoURL,
		SortOrder: 1,
	}
	if err := tx.Create(&episode).Error; err != nil {
		return nil, err
	}
	movie.Episodes = []models.Episode{episode}

	// Thể loại: chỉ gắn những id còn tồn tại
	if len(in.GenreIDs) > 0 {
		var genres []models.Genre
		if err := tx.Where("id IN ?", in.GenreIDs).Find(&genres).Error; err != nil {
			return nil, err
		}
		if len(genres) > 0 {
			if err := tx.Model(&movie).Association("Genres").Append(&genres); err != nil {
				return nil, err
			}
		}
		movie.Genres = genres
	}

	return &movie, nil
}
