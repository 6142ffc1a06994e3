package server

import (
	"context"
	"errors"
	"io"

	"github.com/ncoat48/mikichats/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageHost stores an image under a namespaced identifier and returns a
// durable URL for it.
type ImageHost interface {
	Upload(ctx context.Context, image io.Reader, folder, publicID string) (string, error)
}

type cloudinaryHost struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryHost(cfg config.Config) (ImageHost, error) {
	if cfg.CloudinaryCloudName == "" {
		return nil, errors.New("CLOUDINARY_CLOUD_NAME is not set")
	}
	client, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}
	return &cloudinaryHost{client: client}, nil
}

func (h *cloudinaryHost) Upload(ctx context.Context, image io.Reader, folder, publicID string) (string, error) {
	result, err := h.client.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", errors.New("upload returned no URL")
	}
	return result.SecureURL, nil
}
