package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/movie-streaming-backend/models"
)

func TestPublishCreatesMovieEpisodeAndLinks(t *testing.T) {
	db := setupTestDB(t)
	pub := NewPublisher(db, testDefaults())

	cat := createCategory(t, db, "phim-le")
	genre := createGenre(t, db, "hanh-dong")

	movie, err := pub.Publish(PublishInput{
		Title:       "Hành Trình",
		Description: "mô tả",
		PosterURL:   "https://storage.local/media/images/p.jpg",
		VideoURL:    "https://storage.local/media/videos/v.mp4",
		CategoryIDs: []uuid.UUID{cat.ID},
		GenreIDs:    []uuid.UUID{genre.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "hanh-trinh", movie.Slug)
	assert.Equal(t, "Không xác định", movie.Country)
	assert.Equal(t, 2026, movie.ReleaseYear)
	assert.Equal(t, "completed", movie.Status)
	assert.Equal(t, "single", movie.Type)
	assert.False(t, movie.IsHidden)
	assert.EqualValues(t, 0, movie.Views)

	var saved models.Movie
	require.NoError(t, db.Preload("Categories").Preload("Genres").Preload("Episodes").
		First(&saved, "id = ?", movie.ID).Error)
	require.Len(t, saved.Episodes, 1)
	assert.Equal(t, "Episode 1", saved.Episodes[0].Title)
	assert.Equal(t, "https://storage.local/media/videos/v.mp4", saved.Episodes[0].VideoURL)
	require.Len(t, saved.Categories, 1)
	require.Len(t, saved.Genres, 1)
}

func TestPublishIdenticalTitlesGetDistinctSlugs(t *testing.T) {
	db := setupTestDB(t)
	pub := NewPublisher(db, testDefaults())
	cat := createCategory(t, db, "phim-le")

	first, err := pub.Publish(PublishInput{
		Title:       "Test",
		VideoURL:    "v1",
		CategoryIDs: []uuid.UUID{cat.ID},
	})
	require.NoError(t, err)

	second, err := pub.Publish(PublishInput{
		Title:       "Test",
		VideoURL:    "v2",
		CategoryIDs: []uuid.UUID{cat.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "test", first.Slug)
	assert.Equal(t, "test-1", second.Slug)
}

func TestPublishRetriesOnceOnDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	pub := NewPublisher(db, testDefaults())
	cat := createCategory(t, db, "phim-le")

	forceSlugClashOnce(t, db)

	movie, err := pub.Publish(PublishInput{
		Title:       "Test",
		VideoURL:    "v",
		CategoryIDs: []uuid.UUID{cat.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "test", movie.Slug)

	// Lần đầu rollback toàn bộ, lần hai mới ghi: đúng một phim, một tập
	var movies, episodes int64
	db.Model(&models.Movie{}).Count(&movies)
	db.Model(&models.Episode{}).Count(&episodes)
	assert.EqualValues(t, 1, movies)
	assert.EqualValues(t, 1, episodes)
}

func TestPublishDropsUnknownGenresSilently(t *testing.T) {
	db := setupTestDB(t)
	pub := NewPublisher(db, testDefaults())
	cat := createCategory(t, db, "phim-le")
	genre := createGenre(t, db, "kinh-di")

	movie, err := pub.Publish(PublishInput{
		Title:       "Phim Ma",
		VideoURL:    "v",
		CategoryIDs: []uuid.UUID{cat.ID},
		GenreIDs:    []uuid.UUID{genre.ID, uuid.New(), uuid.New()},
	})
	require.NoError(t, err)

	var saved models.Movie
	require.NoError(t, db.Preload("Genres").First(&saved, "id = ?", movie.ID).Error)
	require.Len(t, saved.Genres, 1)
	assert.Equal(t, genre.ID, saved.Genres[0].ID)
}

func TestPublishRollsBackWhenNoCategoryExists(t *testing.T) {
	db := setupTestDB(t)
	pub := NewPublisher(db, testDefaults())

	// Không có danh mục nào tồn tại: transaction phải fail toàn bộ
	_, err := pub.Publish(PublishInput{
		Title:       "Phim Lỗi",
		VideoURL:    "v",
		CategoryIDs: []uuid.UUID{uuid.New()},
	})
	require.Error(t, err)
	var txErr *TransactionError
	assert.ErrorAs(t, err, &txErr)

	// Không được sót lại bản ghi nào
	var movies, episodes int64
	db.Model(&models.Movie{}).Count(&movies)
	db.Model(&models.Episode{}).Count(&episodes)
	assert.Zero(t, movies)
	assert.Zero(t, episodes)
}
