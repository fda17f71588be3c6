package services

import (
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/vnkhanh/movie-streaming-backend/utils"
)

// MediaStore trừu tượng hóa Supabase Storage để test được pipeline
// mà không cần storage thật. Public URL trả về đồng thời là handle xóa.
type MediaStore interface {
	Store(file *multipart.FileHeader, isVideo bool) (string, error)
	Remove(publicURL string) error
}

type SupabaseMediaStore struct{}

func NewSupabaseMediaStore() *SupabaseMediaStore {
	return &SupabaseMediaStore{}
}

func (s *SupabaseMediaStore) Store(file *multipart.FileHeader, isVideo bool) (string, error) {
	fileID := uuid.New().String()
	if isVideo {
		return utils.UploadVideoToSupabase(file, fileID)
	}
	return utils.UploadImageToSupabase(file, fileID)
}

func (s *SupabaseMediaStore) Remove(publicURL string) error {
	return utils.DeleteFileFromSupabase(publicURL)
}
