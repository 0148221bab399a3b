package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"decor_admin/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	CatalogPageSize    = 12
	CatalogMaxPageSize = 100
)

// NUMERIC(12,2) upper bound.
var maxPrice = decimal.New(1, 10)

type ProductUseCase interface {
	CreateProduct(ctx context.Context, input domain.ProductCreate) (*domain.Product, error)
	GetProductByID(ctx context.Context, id int) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, update domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) (*domain.DeletionResult, error)
	ListProducts(ctx context.Context, page int) (*domain.ProductPage, error)
	Catalog(ctx context.Context, filter domain.ProductFilter, page, perPage int) (*domain.ProductPage, error)
}

type productUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	cascade      *Cascade
	log          *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, cascade *Cascade, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		cascade:      cascade,
		log:          logger,
	}
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("product price cannot be negative: %w", domain.ErrInvalidArgument)
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return fmt.Errorf("product price is too large: %w", domain.ErrInvalidArgument)
	}
	return nil
}

func validateImages(images []domain.ImageRef) error {
	for i, img := range images {
		if img.URL == "" || img.DeleteURL == "" {
			return fmt.Errorf("image %d must have url and deleteUrl: %w", i+1, domain.ErrInvalidArgument)
		}
	}
	return nil
}

func (uc *productUseCase) ensureCategory(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("category is required: %w", domain.ErrInvalidArgument)
	}
	if _, err := uc.categoryRepo.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("category with id %d does not exist: %w", id, domain.ErrInvalidArgument)
		}
		return err
	}
	return nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input domain.ProductCreate) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" {
		uc.log.Warn("Use Case: Attempted to create product with empty name")
		return nil, fmt.Errorf("product name cannot be empty: %w", domain.ErrInvalidArgument)
	}
	if description == "" {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with empty description", name)
		return nil, fmt.Errorf("product description cannot be empty: %w", domain.ErrInvalidArgument)
	}
	if err := validatePrice(input.Price); err != nil {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with invalid price %s", name, input.Price)
		return nil, err
	}
	if err := validateImages(input.Images); err != nil {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with invalid images: %v", name, err)
		return nil, err
	}
	if err := uc.ensureCategory(ctx, input.CategoryID); err != nil {
		uc.log.Warnf("Use Case: Category check failed during product creation: %v", err)
		return nil, err
	}

	product := &domain.Product{
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: description,
		Price:       input.Price,
		InStock:     true,
		Images:      input.Images,
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if product.Images == nil {
		product.Images = []domain.ImageRef{}
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", name)
	createdProduct, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d", createdProduct.Name, createdProduct.ID)
	return createdProduct, nil
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get product with invalid ID: %d", id)
		return nil, fmt.Errorf("invalid product ID: %w", domain.ErrInvalidArgument)
	}

	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product retrieved successfully for ID %d", id)
	return product, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id int, update domain.ProductUpdate) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid product ID: %d", id)
		return nil, fmt.Errorf("invalid product ID for update: %w", domain.ErrInvalidArgument)
	}
	if update.IsEmpty() {
		uc.log.Warnf("Use Case: Attempted update for product ID %d with no fields", id)
		return uc.productRepo.GetProductByID(ctx, id)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			uc.log.Warnf("Use Case: Empty 'name' provided for update ID %d", id)
			return nil, fmt.Errorf("product name cannot be empty if provided for update: %w", domain.ErrInvalidArgument)
		}
		update.Name = &name
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		if description == "" {
			uc.log.Warnf("Use Case: Empty 'description' provided for update ID %d", id)
			return nil, fmt.Errorf("product description cannot be empty if provided for update: %w", domain.ErrInvalidArgument)
		}
		update.Description = &description
	}
	if update.Price != nil {
		if err := validatePrice(*update.Price); err != nil {
			uc.log.Warnf("Use Case: Invalid 'price' provided for update ID %d", id)
			return nil, err
		}
	}
	if update.Images != nil {
		if err := validateImages(*update.Images); err != nil {
			uc.log.Warnf("Use Case: Invalid 'images' provided for update ID %d: %v", id, err)
			return nil, err
		}
	}
	if update.CategoryID != nil {
		if err := uc.ensureCategory(ctx, *update.CategoryID); err != nil {
			uc.log.Warnf("Use Case: Category check failed during product update for ID %d: %v", id, err)
			return nil, err
		}
	}

	uc.log.Infof("Use Case: Attempting partial update for product ID %d", id)
	updatedProduct, err := uc.productRepo.UpdateProduct(ctx, id, update)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed partial update for product ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %d", updatedProduct.ID)
	return updatedProduct, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int) (*domain.DeletionResult, error) {
	return uc.cascade.DeleteProduct(ctx, id)
}

func (uc *productUseCase) ListProducts(ctx context.Context, page int) (*domain.ProductPage, error) {
	return uc.list(ctx, domain.ProductFilter{Sort: domain.SortNewest}, page, AdminPageSize)
}

func (uc *productUseCase) Catalog(ctx context.Context, filter domain.ProductFilter, page, perPage int) (*domain.ProductPage, error) {
	switch filter.Sort {
	case "":
		filter.Sort = domain.SortNewest
	case domain.SortNewest, domain.SortPriceAsc, domain.SortPriceDesc:
	default:
		uc.log.Warnf("Use Case: Unknown catalog sort '%s'", filter.Sort)
		return nil, fmt.Errorf("unknown sort '%s': %w", filter.Sort, domain.ErrInvalidArgument)
	}
	if perPage <= 0 {
		perPage = CatalogPageSize
	}
	if perPage > CatalogMaxPageSize {
		perPage = CatalogMaxPageSize
	}
	return uc.list(ctx, filter, page, perPage)
}

func (uc *productUseCase) list(ctx context.Context, filter domain.ProductFilter, page, perPage int) (*domain.ProductPage, error) {
	page = clampPage(page)
	filter.Limit = perPage
	filter.Offset = (page - 1) * perPage
	uc.log.Infof("Use Case: Attempting to list products (page: %d, per page: %d, sort: %s)", page, perPage, filter.Sort)

	total, err := uc.productRepo.CountProducts(ctx, filter)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to count products: %v", err)
		return nil, fmt.Errorf("could not count products: %w", err)
	}
	products, err := uc.productRepo.ListProducts(ctx, filter)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}

	uc.log.Infof("Use Case: Retrieved %d of %d products", len(products), total)
	return &domain.ProductPage{
		Products:   products,
		Pagination: domain.NewPagination(total, page, perPage),
	}, nil
}
