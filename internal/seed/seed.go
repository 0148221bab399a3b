// Package seed loads a starter catalog from a YAML file.
//
//	categories:
//	  - name: Balloons
//	    products:
//	      - name: Gold arch
//	        description: Balloon arch in gold
//	        price: 4500.50
//	        in_stock: true
//	        images:
//	          - url: https://i.ibb.co/x/arch.jpg
//	            delete_url: https://ibb.co/x/delete
package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"decor_admin/internal/domain"
	"decor_admin/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Catalog struct {
	Categories []Category `yaml:"categories"`
}

type Category struct {
	Name     string    `yaml:"name"`
	Products []Product `yaml:"products"`
}

type Product struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Price       decimal.Decimal   `yaml:"price"`
	InStock     *bool             `yaml:"in_stock"`
	Images      []domain.ImageRef `yaml:"images"`
}

type Summary struct {
	CategoriesCreated int
	ProductsCreated   int
	ProductsSkipped   int
}

func Load(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		if err == io.EOF {
			return &catalog, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, c := range catalog.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("category %d has no name", i+1)
		}
	}
	return &catalog, nil
}

type Seeder struct {
	categories usecase.CategoryUseCase
	products   usecase.ProductUseCase
	log        *logrus.Logger
}

func NewSeeder(cuc usecase.CategoryUseCase, puc usecase.ProductUseCase, logger *logrus.Logger) *Seeder {
	return &Seeder{
		categories: cuc,
		products:   puc,
		log:        logger,
	}
}

// Apply creates missing categories and products. Existing categories are
// matched by name and existing products by name within their category, so a
// catalog can be applied more than once.
func (s *Seeder) Apply(ctx context.Context, catalog *Catalog) (*Summary, error) {
	existing, err := s.categories.ListAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int, len(existing))
	for _, c := range existing {
		byName[c.Name] = c.ID
	}

	summary := &Summary{}
	for _, c := range catalog.Categories {
		name := strings.TrimSpace(c.Name)
		id, ok := byName[name]
		if !ok {
			created, err := s.categories.CreateCategory(ctx, &domain.Category{Name: name})
			if err != nil {
				return summary, fmt.Errorf("category '%s': %w", name, err)
			}
			id = created.ID
			byName[name] = id
			summary.CategoriesCreated++
		}

		have, err := s.productNames(ctx, id)
		if err != nil {
			return summary, err
		}
		for _, p := range c.Products {
			if have[strings.TrimSpace(p.Name)] {
				summary.ProductsSkipped++
				continue
			}
			_, err := s.products.CreateProduct(ctx, domain.ProductCreate{
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				CategoryID:  id,
				InStock:     p.InStock,
				Images:      p.Images,
			})
			if err != nil {
				return summary, fmt.Errorf("product '%s' in '%s': %w", p.Name, name, err)
			}
			summary.ProductsCreated++
		}
	}

	s.log.Infof("Seed: %d categories and %d products created, %d products already present",
		summary.CategoriesCreated, summary.ProductsCreated, summary.ProductsSkipped)
	return summary, nil
}

func (s *Seeder) productNames(ctx context.Context, categoryID int) (map[string]bool, error) {
	names := map[string]bool{}
	for page := 1; ; page++ {
		result, err := s.products.Catalog(ctx, domain.ProductFilter{CategoryID: categoryID}, page, usecase.CatalogMaxPageSize)
		if err != nil {
			return nil, err
		}
		for _, p := range result.Products {
			names[p.Name] = true
		}
		if page >= result.Pagination.Pages {
			return names, nil
		}
	}
}
