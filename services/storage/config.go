package storage

import (
	"coolrentals/config"

	"go.uber.org/zap"
)

// FromConfig builds the image store from the Cloudinary settings, falling back
// to Unconfigured when credentials are missing or rejected.
func FromConfig(cfg config.Config) ImageStore {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		zap.L().Warn("Cloudinary credentials not set; image uploads disabled")
		return Unconfigured()
	}
	up, err := NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		zap.L().Error("Cloudinary initialization failed; image uploads disabled", zap.Error(err))
		return Unconfigured()
	}
	return NewImageStore(up, cfg.CloudinaryFolder)
}
