package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/movie-streaming-backend/models"
)

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "hanh-trinh", MakeSlug("Hành Trình"))
	assert.Equal(t, "phim-hay-2024", MakeSlug("  Phim   Hay   2024  "))
	assert.Equal(t, "test", MakeSlug("Test"))
}

func TestMakeSlugFallbackForSymbolOnlyTitle(t *testing.T) {
	s := MakeSlug("!!! ### ???")
	assert.True(t, strings.HasPrefix(s, "movie-"), "slug rỗng phải rơi về movie-<unix>: %s", s)
}

func TestAllocateSlugReturnsBaseWhenFree(t *testing.T) {
	db := setupTestDB(t)

	s, err := AllocateSlug(db, "Hành Trình")
	require.NoError(t, err)
	assert.Equal(t, "hanh-trinh", s)
}

func TestAllocateSlugProbesUntilFree(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Movie{Title: "Test", Slug: "test"}).Error)
	require.NoError(t, db.Create(&models.Movie{Title: "Test", Slug: "test-1"}).Error)

	s, err := AllocateSlug(db, "Test")
	require.NoError(t, err)
	assert.Equal(t, "test-2", s)
}
