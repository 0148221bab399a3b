package seed

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"decor_admin/internal/domain"
	"decor_admin/internal/repository/memstore"
	"decor_admin/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
categories:
  - name: Balloons
    products:
      - name: Gold arch
        description: Balloon arch in gold
        price: 4500.50
        images:
          - url: https://i.example/arch.jpg
            delete_url: https://i.example/arch/delete
      - name: Helium set
        description: Twenty helium balloons
        price: "1200"
        in_stock: false
  - name: Flowers
`

type nopHost struct{}

func (nopHost) Upload(context.Context, string, string, io.Reader) (domain.ImageRef, error) {
	return domain.ImageRef{}, nil
}
func (nopHost) Delete(context.Context, string) error { return nil }

func newSeeder(store *memstore.Store) *Seeder {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cascade := usecase.NewCascade(store.Categories(), store.Products(), usecase.NewImageCleaner(nopHost{}, time.Second, logger), logger)
	return NewSeeder(
		usecase.NewCategoryUseCase(store.Categories(), cascade, logger),
		usecase.NewProductUseCase(store.Products(), store.Categories(), cascade, logger),
		logger,
	)
}

func TestLoad(t *testing.T) {
	catalog, err := Load(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	require.Len(t, catalog.Categories, 2)
	balloons := catalog.Categories[0]
	require.Len(t, balloons.Products, 2)
	assert.True(t, decimal.RequireFromString("4500.5").Equal(balloons.Products[0].Price))
	assert.Nil(t, balloons.Products[0].InStock)
	assert.Equal(t, []domain.ImageRef{{URL: "https://i.example/arch.jpg", DeleteURL: "https://i.example/arch/delete"}}, balloons.Products[0].Images)
	require.NotNil(t, balloons.Products[1].InStock)
	assert.False(t, *balloons.Products[1].InStock)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("categories:\n  - name: A\n    colour: red\n"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("categories:\n  - name: ''\n"))
	assert.Error(t, err)
}

func TestApplyIsRepeatable(t *testing.T) {
	store := memstore.New()
	seeder := newSeeder(store)
	catalog, err := Load(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	summary, err := seeder.Apply(context.Background(), catalog)
	require.NoError(t, err)
	assert.Equal(t, &Summary{CategoriesCreated: 2, ProductsCreated: 2}, summary)

	summary, err = seeder.Apply(context.Background(), catalog)
	require.NoError(t, err)
	assert.Equal(t, &Summary{ProductsSkipped: 2}, summary)
}

func TestApplyStopsOnInvalidProduct(t *testing.T) {
	store := memstore.New()
	catalog := &Catalog{Categories: []Category{{
		Name:     "Balloons",
		Products: []Product{{Name: "Broken", Description: "", Price: decimal.NewFromInt(1)}},
	}}}

	_, err := newSeeder(store).Apply(context.Background(), catalog)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
