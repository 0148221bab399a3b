package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"decor_admin/internal/clients"
	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const maxUploadFiles = 20

type UploadFile struct {
	Filename string
	Content  io.Reader
}

type ImageUseCase interface {
	UploadImages(ctx context.Context, productName string, files []UploadFile) ([]domain.ImageRef, error)
	DeleteImage(ctx context.Context, deleteURL string) error
}

type imageUseCase struct {
	host clients.ImageHost
	log  *logrus.Logger
}

func NewImageUseCase(host clients.ImageHost, logger *logrus.Logger) ImageUseCase {
	return &imageUseCase{
		host: host,
		log:  logger,
	}
}

// imageName numbers the images only when more than one is uploaded.
func imageName(productName string, index, count int) string {
	if count > 1 {
		return fmt.Sprintf("%s_%d", productName, index+1)
	}
	return productName
}

func (uc *imageUseCase) UploadImages(ctx context.Context, productName string, files []UploadFile) ([]domain.ImageRef, error) {
	productName = strings.TrimSpace(productName)
	if len(files) == 0 {
		uc.log.Warn("Use Case: Attempted upload without images")
		return nil, fmt.Errorf("at least one image is required: %w", domain.ErrInvalidArgument)
	}
	if len(files) > maxUploadFiles {
		uc.log.Warnf("Use Case: Attempted upload of %d images", len(files))
		return nil, fmt.Errorf("at most %d images can be uploaded at once: %w", maxUploadFiles, domain.ErrInvalidArgument)
	}

	uc.log.Infof("Use Case: Uploading %d images for product '%s'", len(files), productName)
	refs := make([]domain.ImageRef, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			ref, err := uc.host.Upload(gctx, imageName(productName, i, len(files)), file.Filename, file.Content)
			if err != nil {
				return fmt.Errorf("image %d (%s): %w", i+1, file.Filename, err)
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.log.Errorf("Use Case: Upload for product '%s' failed: %v", productName, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Uploaded %d images for product '%s'", len(refs), productName)
	return refs, nil
}

func (uc *imageUseCase) DeleteImage(ctx context.Context, deleteURL string) error {
	deleteURL = strings.TrimSpace(deleteURL)
	if deleteURL == "" {
		uc.log.Warn("Use Case: Attempted image delete without delete URL")
		return fmt.Errorf("delete URL is required: %w", domain.ErrInvalidArgument)
	}

	if err := uc.host.Delete(ctx, deleteURL); err != nil {
		uc.log.Errorf("Use Case: Failed to delete image via %s: %v", deleteURL, err)
		return err
	}
	uc.log.Infof("Use Case: Image deleted via %s", deleteURL)
	return nil
}
