package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"decor_admin/internal/domain"
	"decor_admin/internal/repository/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryUseCase(store *memstore.Store) CategoryUseCase {
	return NewCategoryUseCase(store.Categories(), newCascade(store, newFakeHost(), time.Second), quietLogger())
}

func TestCreateCategory(t *testing.T) {
	store := memstore.New()
	uc := newCategoryUseCase(store)
	ctx := context.Background()

	created, err := uc.CreateCategory(ctx, &domain.Category{Name: "  Balloons "})
	require.NoError(t, err)
	assert.Equal(t, "Balloons", created.Name)
	assert.NotZero(t, created.ID)

	_, err = uc.CreateCategory(ctx, &domain.Category{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = uc.CreateCategory(ctx, &domain.Category{Name: "Balloons"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateCategory(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	store.PutCategory(domain.Category{ID: 2, Name: "Flowers"})
	uc := newCategoryUseCase(store)
	ctx := context.Background()

	updated, err := uc.UpdateCategory(ctx, &domain.Category{ID: 1, Name: "Balloon arches"})
	require.NoError(t, err)
	assert.Equal(t, "Balloon arches", updated.Name)

	_, err = uc.UpdateCategory(ctx, &domain.Category{ID: 1, Name: "Flowers"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.UpdateCategory(ctx, &domain.Category{ID: 9, Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateCategory(ctx, &domain.Category{ID: 0, Name: "Zero"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGetCategory(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	uc := newCategoryUseCase(store)

	got, err := uc.GetCategoryByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Arches", got.Name)

	_, err = uc.GetCategoryByID(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCategoriesPaginatesByProductCount(t *testing.T) {
	store := memstore.New()
	for i := 1; i <= 60; i++ {
		store.PutCategory(domain.Category{ID: i, Name: fmt.Sprintf("Category %d", i)})
	}
	store.PutProduct(product(1, 42))
	store.PutProduct(product(2, 42))
	store.PutProduct(product(3, 7))
	uc := newCategoryUseCase(store)

	first, err := uc.ListCategories(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, first.Categories, AdminPageSize)
	assert.Equal(t, 42, first.Categories[0].ID)
	assert.Equal(t, 2, first.Categories[0].ProductCount)
	assert.Equal(t, 7, first.Categories[1].ID)
	assert.Equal(t, domain.Pagination{Total: 60, Pages: 2, CurrentPage: 1, PerPage: AdminPageSize}, first.Pagination)

	second, err := uc.ListCategories(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, second.Categories, 10)

	all, err := uc.ListAllCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 60)
}

func TestListCategoriesHugePageIsEmpty(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 1, Name: "Arches"})
	uc := newCategoryUseCase(store)

	page, err := uc.ListCategories(context.Background(), math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, page.Categories)
	assert.Equal(t, maxPage, page.Pagination.CurrentPage)
}

func TestDeleteCategoryRunsCascade(t *testing.T) {
	store := memstore.New()
	store.PutCategory(domain.Category{ID: 5, Name: "Balloons"})
	store.PutProduct(product(11, 5))
	uc := newCategoryUseCase(store)

	result, err := uc.DeleteCategory(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ProductsRemoved)
	assert.False(t, store.HasCategory(5))
	assert.False(t, store.HasProduct(11))
}
