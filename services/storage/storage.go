package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"coolrentals/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// cloudinaryUploader adapts the Cloudinary client to Uploader.
type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func (u *cloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary: no URL returned")
	}
	return result.SecureURL, nil
}

// NewCloudinaryUploader builds an Uploader from account credentials.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &cloudinaryUploader{cld: cld}, nil
}

// DefaultImageStore validates uploads and hands them to an Uploader.
type DefaultImageStore struct {
	Uploader Uploader
	Folder   string
}

func NewImageStore(up Uploader, folder string) ImageStore {
	return &DefaultImageStore{Uploader: up, Folder: folder}
}

// UploadImages checks count, size and sniffed type of every file before uploading any.
func (s *DefaultImageStore) UploadImages(ctx context.Context, files []Upload) ([]string, error) {
	if len(files) == 0 {
		return nil, utils.ValidationError("No images uploaded")
	}
	if len(files) > MaxImages {
		return nil, utils.ValidationError(fmt.Sprintf("Too many files. Maximum is %d images.", MaxImages))
	}

	contents := make([][]byte, 0, len(files))
	for _, f := range files {
		if f.Size > MaxImageBytes {
			return nil, utils.ValidationError("File size too large. Maximum size is 5MB per image.")
		}
		data, err := readUpload(f)
		if err != nil {
			return nil, utils.InternalError(err)
		}
		if len(data) > MaxImageBytes {
			return nil, utils.ValidationError("File size too large. Maximum size is 5MB per image.")
		}
		if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
			return nil, utils.ValidationError("Only image files are allowed!")
		}
		contents = append(contents, data)
	}

	urls := make([]string, 0, len(contents))
	for i, data := range contents {
		url, err := s.Uploader.Upload(ctx, bytes.NewReader(data), s.Folder)
		if err != nil {
			zap.L().Error("Image upload failed", zap.String("filename", files[i].Filename), zap.Error(err))
			return nil, utils.InternalError(err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func readUpload(f Upload) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Filename, err)
	}
	defer rc.Close()
	// One extra byte detects files whose declared size understated the content.
	return io.ReadAll(io.LimitReader(rc, MaxImageBytes+1))
}

// unconfiguredStore answers every upload with a configuration error.
type unconfiguredStore struct{}

func (unconfiguredStore) UploadImages(context.Context, []Upload) ([]string, error) {
	return nil, utils.UnavailableError("Image storage is not configured")
}

// Unconfigured returns a store used when no Cloudinary credentials are set.
func Unconfigured() ImageStore {
	return unconfiguredStore{}
}
