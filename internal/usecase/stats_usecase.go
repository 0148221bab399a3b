package usecase

import (
	"context"
	"fmt"

	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

type StatsUseCase interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

type statsUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewStatsUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) StatsUseCase {
	return &statsUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (uc *statsUseCase) GetStats(ctx context.Context) (*domain.Stats, error) {
	inStock, outOfStock := true, false

	total, err := uc.productRepo.CountProducts(ctx, domain.ProductFilter{})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to count products: %v", err)
		return nil, fmt.Errorf("could not count products: %w", err)
	}
	active, err := uc.productRepo.CountProducts(ctx, domain.ProductFilter{InStock: &inStock})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to count in-stock products: %v", err)
		return nil, fmt.Errorf("could not count products: %w", err)
	}
	inactive, err := uc.productRepo.CountProducts(ctx, domain.ProductFilter{InStock: &outOfStock})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to count out-of-stock products: %v", err)
		return nil, fmt.Errorf("could not count products: %w", err)
	}
	categories, err := uc.categoryRepo.ListCategories(ctx, 0, 0)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}

	stats := &domain.Stats{
		TotalProducts:    total,
		TotalCategories:  len(categories),
		ActiveProducts:   active,
		InactiveProducts: inactive,
		CategoryData:     make([]domain.NamedValue, 0, len(categories)),
		StockStatusData: []domain.NamedValue{
			{Name: "In stock", Value: active},
			{Name: "Out of stock", Value: inactive},
		},
	}
	for _, c := range categories {
		stats.CategoryData = append(stats.CategoryData, domain.NamedValue{Name: c.Name, Value: c.ProductCount})
	}

	uc.log.Infof("Use Case: Stats computed (%d products, %d categories)", total, len(categories))
	return stats, nil
}
