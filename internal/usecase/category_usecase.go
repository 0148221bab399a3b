package usecase

import (
	"context"
	"fmt"
	"strings"

	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

const AdminPageSize = 50

type CategoryUseCase interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int) (*domain.DeletionResult, error)
	ListCategories(ctx context.Context, page int) (*domain.CategoryPage, error)
	ListAllCategories(ctx context.Context) ([]domain.CategoryWithCount, error)
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	cascade      *Cascade
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, cascade *Cascade, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		cascade:      cascade,
		log:          logger,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		uc.log.Warn("Use Case: Attempted to create category with empty name")
		return nil, fmt.Errorf("category name cannot be empty: %w", domain.ErrInvalidArgument)
	}

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", category.Name)
	createdCategory, err := uc.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", category.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %d", createdCategory.Name, createdCategory.ID)
	return createdCategory, nil
}

func (uc *categoryUseCase) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get category with invalid ID: %d", id)
		return nil, fmt.Errorf("invalid category ID: %w", domain.ErrInvalidArgument)
	}

	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category retrieved successfully for ID %d", id)
	return category, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.ID <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid ID: %d", category.ID)
		return nil, fmt.Errorf("invalid category ID for update: %w", domain.ErrInvalidArgument)
	}
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		uc.log.Warnf("Use Case: Attempted update for ID %d with empty name", category.ID)
		return nil, fmt.Errorf("category name cannot be empty for update: %w", domain.ErrInvalidArgument)
	}

	uc.log.Infof("Use Case: Attempting to update category ID %d", category.ID)
	updatedCategory, err := uc.categoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update category ID %d: %v", category.ID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %d", updatedCategory.ID)
	return updatedCategory, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int) (*domain.DeletionResult, error) {
	return uc.cascade.DeleteCategory(ctx, id)
}

// maxPage keeps (page-1)*perPage far from overflow.
const maxPage = 1 << 20

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, page int) (*domain.CategoryPage, error) {
	page = clampPage(page)
	uc.log.Infof("Use Case: Attempting to list categories (page: %d)", page)

	total, err := uc.categoryRepo.CountCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to count categories: %v", err)
		return nil, fmt.Errorf("could not count categories: %w", err)
	}
	categories, err := uc.categoryRepo.ListCategories(ctx, AdminPageSize, (page-1)*AdminPageSize)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}

	uc.log.Infof("Use Case: Retrieved %d of %d categories", len(categories), total)
	return &domain.CategoryPage{
		Categories: categories,
		Pagination: domain.NewPagination(total, page, AdminPageSize),
	}, nil
}

func (uc *categoryUseCase) ListAllCategories(ctx context.Context) ([]domain.CategoryWithCount, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx, 0, 0)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return categories, nil
}
