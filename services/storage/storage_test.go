package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"coolrentals/config"
	"coolrentals/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fakeUploader struct {
	folders []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	f.folders = append(f.folders, folder)
	return fmt.Sprintf("https://cdn.example/%s/%d.png", folder, len(f.folders)), nil
}

func upload(name string, data []byte) Upload {
	return Upload{
		Filename: name,
		Size:     int64(len(data)),
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return utils.AsAppError(err).Message
}

func TestUploadImagesReturnsURLsInOrder(t *testing.T) {
	up := &fakeUploader{}
	store := NewImageStore(up, "ac-rental")

	urls, err := store.UploadImages(context.Background(), []Upload{upload("a.png", pngHeader), upload("b.png", pngHeader)})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example/ac-rental/1.png", "https://cdn.example/ac-rental/2.png"}, urls)
	assert.Equal(t, []string{"ac-rental", "ac-rental"}, up.folders)
}

func TestUploadImagesValidatesBeforeUploading(t *testing.T) {
	up := &fakeUploader{}
	store := NewImageStore(up, "ac-rental")
	ctx := context.Background()

	_, err := store.UploadImages(ctx, nil)
	assert.Equal(t, "No images uploaded", messageOf(t, err))

	six := make([]Upload, 6)
	for i := range six {
		six[i] = upload("x.png", pngHeader)
	}
	_, err = store.UploadImages(ctx, six)
	assert.Equal(t, "Too many files. Maximum is 5 images.", messageOf(t, err))

	_, err = store.UploadImages(ctx, []Upload{upload("ok.png", pngHeader), upload("notes.txt", []byte("just some text"))})
	assert.Equal(t, "Only image files are allowed!", messageOf(t, err))

	big := upload("big.png", pngHeader)
	big.Size = MaxImageBytes + 1
	_, err = store.UploadImages(ctx, []Upload{big})
	assert.Equal(t, "File size too large. Maximum size is 5MB per image.", messageOf(t, err))

	assert.Empty(t, up.folders, "nothing is uploaded when any file is rejected")
}

func TestUploadImagesCatchesUnderstatedSize(t *testing.T) {
	data := append(append([]byte{}, pngHeader...), make([]byte, MaxImageBytes)...)
	f := upload("sneaky.png", data)
	f.Size = 10

	_, err := NewImageStore(&fakeUploader{}, "f").UploadImages(context.Background(), []Upload{f})
	assert.Equal(t, "File size too large. Maximum size is 5MB per image.", messageOf(t, err))
}

func TestUploadFailureIsInternal(t *testing.T) {
	store := NewImageStore(&fakeUploader{err: errors.New("cloudinary 503")}, "f")
	_, err := store.UploadImages(context.Background(), []Upload{upload("a.png", pngHeader)})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInternal))
}

func TestUnconfiguredStore(t *testing.T) {
	_, err := Unconfigured().UploadImages(context.Background(), []Upload{upload("a.png", pngHeader)})
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, 500, appErr.HTTPStatus())
	assert.Equal(t, "Image storage is not configured", appErr.PublicMessage())
}

func TestFromConfigWithoutCredentials(t *testing.T) {
	_, ok := FromConfig(config.Config{CloudinaryCloudName: "demo"}).(unconfiguredStore)
	assert.True(t, ok)
}
