package services

// Các loại lỗi nghiệp vụ của pipeline kiểm duyệt.
// Controller dựa vào loại lỗi để chọn HTTP status, message trả thẳng cho client.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }

// MediaUploadError: storage từ chối hoặc lỗi mạng khi upload.
// Luôn xảy ra trước mọi ghi DB nên không cần rollback gì.
type MediaUploadError struct {
	Err error
}

func (e *MediaUploadError) Error() string {
	return "upload file lên storage thất bại: " + e.Err.Error()
}

func (e *MediaUploadError) Unwrap() error { return e.Err }

// TransactionError: transaction tạo/xóa catalog thất bại, toàn bộ đã rollback.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return "transaction thất bại: " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error { return e.Err }
