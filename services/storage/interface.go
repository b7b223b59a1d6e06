package storage

import (
	"context"
	"io"
)

const (
	MaxImages     = 5
	MaxImageBytes = 5 << 20
)

// Upload is one file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// ImageStore uploads images and returns their public URLs.
type ImageStore interface {
	UploadImages(ctx context.Context, files []Upload) ([]string, error)
}

// Uploader is the subset of the Cloudinary upload API the store needs.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
}
