package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/movie-streaming-backend/services"
)

// respondServiceError map lỗi nghiệp vụ của services sang HTTP status
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		stateErr      *services.InvalidStateError
		uploadErr     *services.MediaUploadError
		txErr         *services.TransactionError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Message})
	case errors.As(err, &uploadErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không thể upload file lên storage", "details": uploadErr.Err.Error()})
	case errors.As(err, &txErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể hoàn tất thao tác", "details": txErr.Err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
