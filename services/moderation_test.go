package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/movie-streaming-backend/models"
)

func TestSubmitCreatesPendingUpload(t *testing.T) {
	svc, media, db := newTestService(t)

	upload, err := svc.Submit(SubmitInput{
		Title:       "  Hành Trình  ",
		SenderName:  "alice",
		Description: "phim tự quay",
		Video:       newFileHeader(t, "video.mp4"),
		Poster:      newFileHeader(t, "poster.jpg"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Hành Trình", upload.Title)
	assert.Equal(t, models.UploadStatusPending, upload.Status)
	assert.Nil(t, upload.MovieID)
	assert.NotEmpty(t, upload.VideoURL)
	assert.NotEmpty(t, upload.PosterURL)
	assert.Len(t, media.stored, 2)

	var count int64
	db.Model(&models.Upload{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitValidation(t *testing.T) {
	svc, media, db := newTestService(t)

	cases := []struct {
		name string
		in   SubmitInput
	}{
		{"thiếu video", SubmitInput{Title: "Phim", SenderName: "alice"}},
		{"thiếu tiêu đề", SubmitInput{Title: "   ", SenderName: "alice", Video: newFileHeader(t, "v.mp4")}},
		{"thiếu người gửi", SubmitInput{Title: "Phim", SenderName: "", Video: newFileHeader(t, "v.mp4")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(tc.in)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	// Validate fail trước khi đụng storage hay DB
	assert.Empty(t, media.stored)
	var count int64
	db.Model(&models.Upload{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitCleansVideoWhenPosterUploadFails(t *testing.T) {
	svc, media, db := newTestService(t)
	media.storeImageErr = errors.New("storage hết chỗ")

	_, err := svc.Submit(SubmitInput{
		Title:      "Phim",
		SenderName: "alice",
		Video:      newFileHeader(t, "video.mp4"),
		Poster:     newFileHeader(t, "poster.jpg"),
	})
	var upErr *MediaUploadError
	require.ErrorAs(t, err, &upErr)

	// Video đã upload trước đó phải được dọn, không ghi gì vào DB
	require.Len(t, media.stored, 1)
	assert.Contains(t, media.removed, media.stored[0])
	var count int64
	db.Model(&models.Upload{}).Count(&count)
	assert.Zero(t, count)
}

func TestApprovePublishesMovieAndFlipsStatus(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	genre := createGenre(t, db, "hanh-dong")
	upload := createPendingUpload(t, svc, "Hành Trình")

	got, movie, err := svc.Approve(upload.ID, ApproveInput{
		Title:       "Hành Trình",
		Description: "bản duyệt",
		CategoryIDs: []uuid.UUID{cat.ID},
		GenreIDs:    []uuid.UUID{genre.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, models.UploadStatusApproved, got.Status)
	require.NotNil(t, got.MovieID)
	assert.Equal(t, movie.ID, *got.MovieID)
	assert.Equal(t, "hanh-trinh", movie.Slug)

	var saved models.Movie
	require.NoError(t, db.Preload("Episodes").Preload("Categories").Preload("Genres").
		First(&saved, "id = ?", movie.ID).Error)
	require.Len(t, saved.Episodes, 1)
	assert.Equal(t, upload.VideoURL, saved.Episodes[0].VideoURL)
	assert.Len(t, saved.Categories, 1)
	assert.Len(t, saved.Genres, 1)
}

func TestApproveValidationKeepsUploadPending(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	upload := createPendingUpload(t, svc, "Phim Chờ")

	cases := []struct {
		name string
		in   ApproveInput
	}{
		{"tiêu đề trống", ApproveInput{Title: "   ", CategoryIDs: []uuid.UUID{cat.ID}}},
		{"không có danh mục", ApproveInput{Title: "Phim"}},
		{"danh mục không tồn tại", ApproveInput{Title: "Phim", CategoryIDs: []uuid.UUID{cat.ID, uuid.New()}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Approve(upload.ID, tc.in)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	// Upload vẫn chờ duyệt, chưa có phim nào được tạo
	var reloaded models.Upload
	require.NoError(t, db.First(&reloaded, "id = ?", upload.ID).Error)
	assert.Equal(t, models.UploadStatusPending, reloaded.Status)
	assert.Nil(t, reloaded.MovieID)

	var movies int64
	db.Model(&models.Movie{}).Count(&movies)
	assert.Zero(t, movies)
}

func TestApproveAcceptsDuplicateCategoryIDs(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	upload := createPendingUpload(t, svc, "Phim")

	// Cùng một danh mục gửi hai lần: chỉ tính một, không bị coi là
	// danh mục không tồn tại
	_, movie, err := svc.Approve(upload.ID, ApproveInput{
		Title:       "Phim",
		CategoryIDs: []uuid.UUID{cat.ID, cat.ID},
	})
	require.NoError(t, err)

	var saved models.Movie
	require.NoError(t, db.Preload("Categories").First(&saved, "id = ?", movie.ID).Error)
	require.Len(t, saved.Categories, 1)
	assert.Equal(t, cat.ID, saved.Categories[0].ID)
}

func TestApproveRetriesWhenSlugInsertHitsUniqueIndex(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	upload := createPendingUpload(t, svc, "Phim")

	forceSlugClashOnce(t, db)

	got, movie, err := svc.Approve(upload.ID, ApproveInput{
		Title:       "Phim",
		CategoryIDs: []uuid.UUID{cat.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "phim", movie.Slug)
	assert.Equal(t, models.UploadStatusApproved, got.Status)

	var movies int64
	db.Model(&models.Movie{}).Count(&movies)
	assert.EqualValues(t, 1, movies)
}

func TestApproveRejectsNonPendingUpload(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	upload := createPendingUpload(t, svc, "Phim")

	_, _, err := svc.Approve(upload.ID, ApproveInput{Title: "Phim", CategoryIDs: []uuid.UUID{cat.ID}})
	require.NoError(t, err)

	// Duyệt lần hai phải bị chặn
	_, _, err = svc.Approve(upload.ID, ApproveInput{Title: "Phim", CategoryIDs: []uuid.UUID{cat.ID}})
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)

	var movies int64
	db.Model(&models.Movie{}).Count(&movies)
	assert.EqualValues(t, 1, movies)
}

func TestApproveUnknownUpload(t *testing.T) {
	svc, _, db := newTestService(t)
	createCategory(t, db, "phim-le")

	_, _, err := svc.Approve(uuid.New(), ApproveInput{Title: "Phim"})
	var nfErr *NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestRejectDeletesRecordAndCleansMedia(t *testing.T) {
	svc, media, db := newTestService(t)
	upload := createPendingUpload(t, svc, "Phim Xấu")
	media.removed = media.removed[:0]

	got, err := svc.Reject(upload.ID, "  chất lượng quá thấp  ")
	require.NoError(t, err)

	assert.Equal(t, models.UploadStatusRejected, got.Status)
	require.NotNil(t, got.RejectReason)
	assert.Equal(t, "chất lượng quá thấp", *got.RejectReason)
	assert.Contains(t, media.removed, upload.VideoURL)

	var count int64
	db.Model(&models.Upload{}).Count(&count)
	assert.Zero(t, count)
}

func TestRejectSucceedsWhenStorageCleanupFails(t *testing.T) {
	svc, media, db := newTestService(t)
	upload := createPendingUpload(t, svc, "Phim")
	media.removeErr = errors.New("storage không phản hồi")

	_, err := svc.Reject(upload.ID, "trùng nội dung")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Upload{}).Count(&count)
	assert.Zero(t, count)
}

func TestRejectOnlyAppliesToPending(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	upload := createPendingUpload(t, svc, "Phim")
	_, _, err := svc.Approve(upload.ID, ApproveInput{Title: "Phim", CategoryIDs: []uuid.UUID{cat.ID}})
	require.NoError(t, err)

	_, err = svc.Reject(upload.ID, "muộn rồi")
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestDeletePendingUpload(t *testing.T) {
	svc, media, db := newTestService(t)
	upload := createPendingUpload(t, svc, "Phim")
	media.removed = media.removed[:0]

	require.NoError(t, svc.Delete(upload.ID))
	assert.Contains(t, media.removed, upload.VideoURL)

	var count int64
	db.Model(&models.Upload{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteRefusesApprovedUpload(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	upload := createPendingUpload(t, svc, "Phim")
	_, _, err := svc.Approve(upload.ID, ApproveInput{Title: "Phim", CategoryIDs: []uuid.UUID{cat.ID}})
	require.NoError(t, err)

	err = svc.Delete(upload.ID)
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)

	// Cả upload lẫn phim vẫn còn nguyên
	var uploads, movies int64
	db.Model(&models.Upload{}).Count(&uploads)
	db.Model(&models.Movie{}).Count(&movies)
	assert.EqualValues(t, 1, uploads)
	assert.EqualValues(t, 1, movies)
}

func TestAttachPosterOnPendingOnly(t *testing.T) {
	svc, media, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	upload := createPendingUpload(t, svc, "Phim")

	got, err := svc.AttachPoster(upload.ID, newFileHeader(t, "poster.jpg"))
	require.NoError(t, err)
	assert.NotEmpty(t, got.PosterURL)

	// Thay poster lần hai thì cái cũ bị dọn
	oldPoster := got.PosterURL
	media.removed = media.removed[:0]
	got, err = svc.AttachPoster(upload.ID, newFileHeader(t, "poster2.jpg"))
	require.NoError(t, err)
	assert.NotEqual(t, oldPoster, got.PosterURL)
	assert.Contains(t, media.removed, oldPoster)

	_, _, err = svc.Approve(upload.ID, ApproveInput{Title: "Phim", CategoryIDs: []uuid.UUID{cat.ID}})
	require.NoError(t, err)

	_, err = svc.AttachPoster(upload.ID, newFileHeader(t, "poster3.jpg"))
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestEditSyncsApprovedUploadToMovie(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	upload := createPendingUpload(t, svc, "Tên Cũ")
	_, movie, err := svc.Approve(upload.ID, ApproveInput{Title: "Tên Cũ", CategoryIDs: []uuid.UUID{cat.ID}})
	require.NoError(t, err)
	oldSlug := movie.Slug

	got, err := svc.Edit(upload.ID, EditInput{
		Title:       "Tên Mới",
		Description: "mô tả mới",
		Poster:      newFileHeader(t, "poster-moi.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tên Mới", got.Title)

	var saved models.Movie
	require.NoError(t, db.First(&saved, "id = ?", movie.ID).Error)
	assert.Equal(t, "Tên Mới", saved.Title)
	assert.Equal(t, "mô tả mới", saved.Description)
	assert.Equal(t, got.PosterURL, saved.PosterURL)
	// Slug giữ nguyên để URL công khai không đổi
	assert.Equal(t, oldSlug, saved.Slug)
}

func TestEditRefusesPendingUpload(t *testing.T) {
	svc, _, _ := newTestService(t)
	upload := createPendingUpload(t, svc, "Phim")

	_, err := svc.Edit(upload.ID, EditInput{Title: "Tên Mới"})
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestDeleteApprovedRemovesEverything(t *testing.T) {
	svc, media, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")
	genre := createGenre(t, db, "hanh-dong")
	upload := createPendingUpload(t, svc, "Phim Gỡ")
	_, movie, err := svc.Approve(upload.ID, ApproveInput{
		Title:       "Phim Gỡ",
		CategoryIDs: []uuid.UUID{cat.ID},
		GenreIDs:    []uuid.UUID{genre.ID},
	})
	require.NoError(t, err)
	media.removed = media.removed[:0]

	require.NoError(t, svc.DeleteApproved(upload.ID))

	var uploads, movies, episodes int64
	db.Model(&models.Upload{}).Count(&uploads)
	db.Model(&models.Movie{}).Count(&movies)
	db.Model(&models.Episode{}).Count(&episodes)
	assert.Zero(t, uploads)
	assert.Zero(t, movies)
	assert.Zero(t, episodes)

	var links int64
	db.Table("movie_categories").Where("movie_id = ?", movie.ID).Count(&links)
	assert.Zero(t, links)
	db.Table("movie_genres").Where("movie_id = ?", movie.ID).Count(&links)
	assert.Zero(t, links)

	// Danh mục/thể loại dùng chung không bị đụng tới
	var cats, genres int64
	db.Model(&models.Category{}).Count(&cats)
	db.Model(&models.Genre{}).Count(&genres)
	assert.EqualValues(t, 1, cats)
	assert.EqualValues(t, 1, genres)

	assert.Contains(t, media.removed, upload.VideoURL)
}

func TestDeleteApprovedRefusesPendingUpload(t *testing.T) {
	svc, _, db := newTestService(t)
	upload := createPendingUpload(t, svc, "Phim")

	err := svc.DeleteApproved(upload.ID)
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)

	var count int64
	db.Model(&models.Upload{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestListFiltersByStatusWithPagination(t *testing.T) {
	svc, _, db := newTestService(t)
	cat := createCategory(t, db, "phim-le")

	for i := 0; i < 3; i++ {
		createPendingUpload(t, svc, "Phim Chờ")
	}
	approved := createPendingUpload(t, svc, "Phim Duyệt")
	_, _, err := svc.Approve(approved.ID, ApproveInput{Title: "Phim Duyệt", CategoryIDs: []uuid.UUID{cat.ID}})
	require.NoError(t, err)

	pending, total, err := svc.List(models.UploadStatusPending, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, pending, 2)

	all, total, err := svc.List("", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, all, 4)
}
