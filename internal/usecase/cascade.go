package usecase

import (
	"context"
	"errors"
	"fmt"

	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

type cascadeStage string

const (
	stageValidating     cascadeStage = "validating"
	stageLocating       cascadeStage = "locating"
	stageCleaningImages cascadeStage = "cleaning_images"
	stageRemovingRows   cascadeStage = "removing_rows"
	stageDone           cascadeStage = "done"
	stageFailed         cascadeStage = "failed"
)

// located is what the cascade found for one target before anything is removed.
type located struct {
	products []int
	images   []domain.ImageRef
}

// Cascade deletes a category or product together with everything it owns:
// hosted images first, then product rows, then the category row.
type Cascade struct {
	categoryRepo domain.CategoryRepository
	productRepo  domain.ProductRepository
	cleaner      *ImageCleaner
	log          *logrus.Logger
}

func NewCascade(cRepo domain.CategoryRepository, pRepo domain.ProductRepository, cleaner *ImageCleaner, logger *logrus.Logger) *Cascade {
	return &Cascade{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		cleaner:      cleaner,
		log:          logger,
	}
}

func (c *Cascade) entry(target domain.DeletionTarget, id int, stage cascadeStage) *logrus.Entry {
	return c.log.WithFields(logrus.Fields{
		"target": target,
		"id":     id,
		"stage":  stage,
	})
}

func (c *Cascade) fail(target domain.DeletionTarget, id int, err error) error {
	c.entry(target, id, stageFailed).Warnf("Use Case: Cascade delete failed: %v", err)
	return err
}

// DeleteCategory removes the category, all of its products and their images.
func (c *Cascade) DeleteCategory(ctx context.Context, id int) (*domain.DeletionResult, error) {
	target := domain.TargetCategory
	c.entry(target, id, stageValidating).Info("Use Case: Cascade delete requested")
	if id <= 0 {
		return nil, c.fail(target, id, fmt.Errorf("invalid category ID %d: %w", id, domain.ErrInvalidArgument))
	}
	ctx = context.WithoutCancel(ctx)

	c.entry(target, id, stageLocating).Debug("Use Case: Locating category records")
	if _, err := c.categoryRepo.GetCategoryByID(ctx, id); err != nil {
		return nil, c.fail(target, id, storeError("failed to look up category", err))
	}
	rows, err := c.productRepo.ListProductImagesByCategory(ctx, id)
	if err != nil {
		return nil, c.fail(target, id, storeError("failed to look up products of category", err))
	}
	found := locate(rows)

	c.entry(target, id, stageCleaningImages).Infof("Use Case: Removing %d images of %d products", len(found.images), len(found.products))
	c.cleaner.Cleanup(ctx, found.images)

	c.entry(target, id, stageRemovingRows).Debug("Use Case: Removing category rows")
	removed, err := c.productRepo.DeleteProductsByCategory(ctx, id)
	if err != nil {
		return nil, c.fail(target, id, fmt.Errorf("failed to delete products of category %d: %w: %w", id, domain.ErrStoreFailure, err))
	}
	if err := c.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return nil, c.fail(target, id, storeError("failed to delete category", err))
	}

	result := &domain.DeletionResult{
		Target:          target,
		CategoryID:      id,
		ProductsRemoved: int(removed),
		ImagesCleaned:   len(found.images),
	}
	c.entry(target, id, stageDone).Info("Use Case: " + result.Message())
	return result, nil
}

// DeleteProduct removes a single product and its images. The owning category
// is left untouched.
func (c *Cascade) DeleteProduct(ctx context.Context, id int) (*domain.DeletionResult, error) {
	target := domain.TargetProduct
	c.entry(target, id, stageValidating).Info("Use Case: Cascade delete requested")
	if id <= 0 {
		return nil, c.fail(target, id, fmt.Errorf("invalid product ID %d: %w", id, domain.ErrInvalidArgument))
	}
	ctx = context.WithoutCancel(ctx)

	c.entry(target, id, stageLocating).Debug("Use Case: Locating product records")
	row, err := c.productRepo.GetProductImages(ctx, id)
	if err != nil {
		return nil, c.fail(target, id, storeError("failed to look up product", err))
	}
	found := locate([]domain.ProductImages{*row})

	c.entry(target, id, stageCleaningImages).Infof("Use Case: Removing %d images", len(found.images))
	c.cleaner.Cleanup(ctx, found.images)

	c.entry(target, id, stageRemovingRows).Debug("Use Case: Removing product row")
	if err := c.productRepo.DeleteProduct(ctx, id); err != nil {
		return nil, c.fail(target, id, storeError("failed to delete product", err))
	}

	result := &domain.DeletionResult{
		Target:          target,
		ProductID:       id,
		ProductsRemoved: 1,
		ImagesCleaned:   len(found.images),
	}
	c.entry(target, id, stageDone).Info("Use Case: " + result.Message())
	return result, nil
}

func locate(rows []domain.ProductImages) located {
	var found located
	for _, row := range rows {
		found.products = append(found.products, row.ProductID)
		found.images = append(found.images, row.Images.Normalize()...)
	}
	return found
}

// storeError keeps NotFound as is and turns anything else into StoreFailure.
func storeError(msg string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrStoreFailure, err)
}
