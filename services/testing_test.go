package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/movie-streaming-backend/config"
	"github.com/vnkhanh/movie-streaming-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Movie{},
		&models.Episode{},
		&models.Category{},
		&models.Genre{},
		&models.Upload{},
	))
	return db
}

func testDefaults() config.CatalogDefaults {
	return config.CatalogDefaults{
		Country:      "Không xác định",
		ReleaseYear:  2026,
		Status:       "completed",
		Type:         "single",
		EpisodeTitle: "Episode 1",
	}
}

// fakeMediaStore thay Supabase trong test: lưu lại URL đã store/remove
type fakeMediaStore struct {
	mu            sync.Mutex
	stored        []string
	removed       []string
	storeErr      error
	storeImageErr error // chỉ fail upload ảnh, video vẫn qua
	removeErr     error
}

func (f *fakeMediaStore) Store(file *multipart.FileHeader, isVideo bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return "", f.storeErr
	}
	if !isVideo && f.storeImageErr != nil {
		return "", f.storeImageErr
	}
	folder := "images"
	if isVideo {
		folder = "videos"
	}
	url := fmt.Sprintf("https://storage.local/media/%s/%d-%s", folder, len(f.stored), file.Filename)
	f.stored = append(f.stored, url)
	return url, nil
}

func (f *fakeMediaStore) Remove(publicURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, publicURL)
	return f.removeErr
}

func newTestService(t *testing.T) (*ModerationService, *fakeMediaStore, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	media := &fakeMediaStore{}
	return NewModerationService(db, media, testDefaults()), media, db
}

// newFileHeader dựng multipart.FileHeader thật từ một form trong bộ nhớ
func newFileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("noi dung file test"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

// forceSlugClashOnce làm lần insert phim đầu tiên đụng unique index trên
// movies.slug: chèn trước một bản ghi trùng slug trong cùng transaction.
// Transaction rollback mang theo bản ghi chèn, lần thử lại đi qua sạch.
func forceSlugClashOnce(t *testing.T, db *gorm.DB) {
	t.Helper()

	clashed := false
	err := db.Callback().Create().Before("gorm:create").Register("slug_clash_once", func(tx *gorm.DB) {
		if clashed {
			return
		}
		movie, ok := tx.Statement.Dest.(*models.Movie)
		if !ok {
			return
		}
		clashed = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO movies (id, title, slug) VALUES (?, ?, ?)",
			uuid.New(), "Kẻ chen ngang", movie.Slug,
		)
	})
	require.NoError(t, err)
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	cat := models.Category{Name: name, Slug: name, Status: true}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func createGenre(t *testing.T, db *gorm.DB, name string) models.Genre {
	t.Helper()
	g := models.Genre{Name: name, Slug: name, Status: true}
	require.NoError(t, db.Create(&g).Error)
	return g
}

func createPendingUpload(t *testing.T, svc *ModerationService, title string) *models.Upload {
	t.Helper()
	upload, err := svc.Submit(SubmitInput{
		Title:      title,
		SenderName: "alice",
		Video:      newFileHeader(t, "video.mp4"),
	})
	require.NoError(t, err)
	return upload
}
