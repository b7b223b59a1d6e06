package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"coolrentals/services/storage"
	"coolrentals/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipart overhead allowed on top of the image payload itself
const uploadSlack = 1 << 20

// StorageHandler accepts admin image uploads.
type StorageHandler struct {
	Images storage.ImageStore
}

func NewStorageHandler(images storage.ImageStore) *StorageHandler {
	return &StorageHandler{Images: images}
}

// UploadImages handles POST /admin/uploads with multipart field "images".
func (h *StorageHandler) UploadImages(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImages*storage.MaxImageBytes+uploadSlack)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(utils.ValidationError("File size too large. Maximum size is 5MB per image."))
			return
		}
		getLogger(c).Warn("Invalid upload form", zap.Error(err))
		c.Error(utils.ValidationError("No images uploaded"))
		return
	}

	headers := form.File["images"]
	files := make([]storage.Upload, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadOf(fh))
	}

	urls, err := h.Images.UploadImages(c.Request.Context(), files)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Images uploaded successfully", gin.H{"urls": urls})
}

func uploadOf(fh *multipart.FileHeader) storage.Upload {
	return storage.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
