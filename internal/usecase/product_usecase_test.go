package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"decor_admin/internal/domain"
	"decor_admin/internal/repository/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductUseCase(store *memstore.Store) ProductUseCase {
	return NewProductUseCase(store.Products(), store.Categories(), newCascade(store, newFakeHost(), time.Second), quietLogger())
}

func validCreate() domain.ProductCreate {
	return domain.ProductCreate{
		Name:        "Gold arch",
		Description: "Balloon arch in gold",
		Price:       decimal.RequireFromString("4500.50"),
		CategoryID:  1,
	}
}

func TestCreateProductDefaults(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	uc := newProductUseCase(store)

	created, err := uc.CreateProduct(context.Background(), validCreate())
	require.NoError(t, err)

	assert.True(t, created.InStock)
	assert.Empty(t, created.Images)
	assert.Equal(t, "Arches", created.CategoryName)
	assert.True(t, decimal.RequireFromString("4500.50").Equal(created.Price))
}

func TestCreateProductValidation(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	uc := newProductUseCase(store)

	tests := []struct {
		name   string
		mutate func(*domain.ProductCreate)
	}{
		{"empty name", func(p *domain.ProductCreate) { p.Name = " " }},
		{"empty description", func(p *domain.ProductCreate) { p.Description = "" }},
		{"negative price", func(p *domain.ProductCreate) { p.Price = decimal.NewFromInt(-1) }},
		{"huge price", func(p *domain.ProductCreate) { p.Price = decimal.New(1, 12) }},
		{"missing category", func(p *domain.ProductCreate) { p.CategoryID = 0 }},
		{"unknown category", func(p *domain.ProductCreate) { p.CategoryID = 9 }},
		{"incomplete image", func(p *domain.ProductCreate) { p.Images = []domain.ImageRef{{URL: "a"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreate()
			tt.mutate(&input)
			_, err := uc.CreateProduct(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestCreateProductAllowsZeroPriceAndOutOfStock(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	uc := newProductUseCase(store)

	input := validCreate()
	input.Price = decimal.Zero
	outOfStock := false
	input.InStock = &outOfStock

	created, err := uc.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, created.InStock)
	assert.True(t, created.Price.IsZero())
}

func TestUpdateProduct(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	store.PutCategory(domain.Category{ID: 2, Name: "Flowers"})
	store.PutProduct(product(10, 1))
	uc := newProductUseCase(store)
	ctx := context.Background()

	name := "  Renamed  "
	category := 2
	images := []domain.ImageRef{{URL: "u", DeleteURL: "d"}}
	updated, err := uc.UpdateProduct(ctx, 10, domain.ProductUpdate{Name: &name, CategoryID: &category, Images: &images})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 2, updated.CategoryID)
	assert.Equal(t, "Flowers", updated.CategoryName)
	assert.Equal(t, images, updated.Images)

	unknown := 9
	_, err = uc.UpdateProduct(ctx, 10, domain.ProductUpdate{CategoryID: &unknown})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	negative := decimal.NewFromInt(-5)
	_, err = uc.UpdateProduct(ctx, 10, domain.ProductUpdate{Price: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = uc.UpdateProduct(ctx, 11, domain.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	same, err := uc.UpdateProduct(ctx, 10, domain.ProductUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", same.Name)
}

func TestListProductsNewestFirst(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	for id := 1; id <= 55; id++ {
		store.PutProduct(product(id, 1))
	}
	uc := newProductUseCase(store)

	page, err := uc.ListProducts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Products, AdminPageSize)
	assert.Equal(t, 55, page.Products[0].ID)
	assert.Equal(t, domain.Pagination{Total: 55, Pages: 2, CurrentPage: 1, PerPage: AdminPageSize}, page.Pagination)

	page, err = uc.ListProducts(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page.Products, 5)
}

func TestListProductsHugePageIsEmpty(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	store.PutProduct(product(1, 1))
	uc := newProductUseCase(store)

	page, err := uc.ListProducts(context.Background(), math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, maxPage, page.Pagination.CurrentPage)

	page, err = uc.Catalog(context.Background(), domain.ProductFilter{}, math.MaxInt, CatalogMaxPageSize)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestCatalogFiltersAndSorts(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	store.PutCategory(domain.Category{ID: 2, Name: "Flowers"})
	prices := map[int]int64{1: 300, 2: 100, 3: 200}
	for id, price := range prices {
		p := product(id, 1)
		p.Price = decimal.NewFromInt(price)
		p.InStock = id != 3
		store.PutProduct(p)
	}
	store.PutProduct(product(4, 2))
	uc := newProductUseCase(store)
	ctx := context.Background()

	page, err := uc.Catalog(ctx, domain.ProductFilter{CategoryID: 1, Sort: domain.SortPriceAsc}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Products, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{page.Products[0].ID, page.Products[1].ID, page.Products[2].ID})
	assert.Equal(t, CatalogPageSize, page.Pagination.PerPage)

	inStock := true
	page, err = uc.Catalog(ctx, domain.ProductFilter{CategoryID: 1, InStock: &inStock, Sort: domain.SortPriceDesc}, 1, 1000)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, 1, page.Products[0].ID)
	assert.Equal(t, CatalogMaxPageSize, page.Pagination.PerPage)

	_, err = uc.Catalog(ctx, domain.ProductFilter{Sort: "random"}, 1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
