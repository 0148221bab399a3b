package usecase

import (
	"context"
	"testing"

	"decor_admin/internal/domain"
	"decor_admin/internal/repository/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	store.PutCategory(domain.Category{ID: 2, Name: "Flowers"})
	store.PutProduct(product(1, 1))
	store.PutProduct(product(2, 1))
	out := product(3, 2)
	out.InStock = false
	store.PutProduct(out)

	stats, err := NewStatsUseCase(store.Products(), store.Categories(), quietLogger()).GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, 2, stats.ActiveProducts)
	assert.Equal(t, 1, stats.InactiveProducts)
	assert.Equal(t, []domain.NamedValue{{Name: "Arches", Value: 2}, {Name: "Flowers", Value: 1}}, stats.CategoryData)
	assert.Equal(t, []domain.NamedValue{{Name: "In stock", Value: 2}, {Name: "Out of stock", Value: 1}}, stats.StockStatusData)
}

func TestGetStatsStoreFailure(t *testing.T) {
	store := memstore.New()
	store.Fail["CountProducts"] = memstore.ErrInjected
	_, err := NewStatsUseCase(store.Products(), store.Categories(), quietLogger()).GetStats(context.Background())
	assert.ErrorIs(t, err, memstore.ErrInjected)
}
