// Package memstore holds in-memory implementations of the domain repositories.
// The test suites use it in place of PostgreSQL; it keeps the same error
// kinds and the same products-before-category constraint.
package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"decor_admin/internal/domain"
)

// ErrInjected is returned by operations listed in Store.Fail.
var ErrInjected = errors.New("injected store failure")

// Store is shared by the three repositories so that category ownership and
// product counts stay consistent.
type Store struct {
	mu         sync.Mutex
	categories map[int]domain.Category
	products   map[int]storedProduct
	settings   map[string]string
	nextCatID  int
	nextProdID int
	clock      time.Time

	// Fail maps an operation name (e.g. "DeleteCategory") to the error it
	// should return instead of running.
	Fail map[string]error
	// Calls counts invocations per operation name.
	Calls map[string]int
}

type storedProduct struct {
	product domain.Product
	images  domain.RawImages
}

func New() *Store {
	return &Store{
		categories: map[int]domain.Category{},
		products:   map[int]storedProduct{},
		settings:   map[string]string{},
		nextCatID:  1,
		nextProdID: 1,
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Fail:       map[string]error{},
		Calls:      map[string]int{},
	}
}

func (s *Store) enter(op string) error {
	s.Calls[op]++
	if err, ok := s.Fail[op]; ok {
		return err
	}
	return nil
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// CallCount is safe to use while other goroutines use the store.
func (s *Store) CallCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[op]
}

// PutCategory inserts a category with a fixed id.
func (s *Store) PutCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.tick()
	}
	s.categories[c.ID] = c
	if c.ID >= s.nextCatID {
		s.nextCatID = c.ID + 1
	}
}

// PutProduct inserts a product with a fixed id and images stored exactly as
// given, which lets tests seed string-encoded or malformed entries.
func (s *Store) PutProduct(p domain.Product, rawImages ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.tick()
		p.UpdatedAt = p.CreatedAt
	}
	images := domain.RawImages{}
	for _, raw := range rawImages {
		images = append(images, json.RawMessage(raw))
	}
	p.Images = images.Normalize()
	s.products[p.ID] = storedProduct{product: p, images: images}
	if p.ID >= s.nextProdID {
		s.nextProdID = p.ID + 1
	}
}

func (s *Store) HasCategory(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.categories[id]
	return ok
}

func (s *Store) HasProduct(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.products[id]
	return ok
}

func (s *Store) Setting(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	return v, ok
}

func (s *Store) Categories() domain.CategoryRepository { return categoryRepo{s} }
func (s *Store) Products() domain.ProductRepository   { return productRepo{s} }
func (s *Store) Settings() domain.SettingsRepository  { return settingsRepo{s} }

type categoryRepo struct{ s *Store }

func (r categoryRepo) nameTaken(name string, exceptID int) bool {
	for id, c := range r.s.categories {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func (r categoryRepo) CreateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("CreateCategory"); err != nil {
		return nil, err
	}
	if r.nameTaken(category.Name, 0) {
		return nil, fmt.Errorf("category with name '%s': %w", category.Name, domain.ErrConflict)
	}
	category.ID = r.s.nextCatID
	r.s.nextCatID++
	category.CreatedAt = r.s.tick()
	r.s.categories[category.ID] = *category
	return category, nil
}

func (r categoryRepo) GetCategoryByID(_ context.Context, id int) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("GetCategoryByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with id %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r categoryRepo) UpdateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("UpdateCategory"); err != nil {
		return nil, err
	}
	existing, ok := r.s.categories[category.ID]
	if !ok {
		return nil, fmt.Errorf("category with id %d: %w", category.ID, domain.ErrNotFound)
	}
	if r.nameTaken(category.Name, category.ID) {
		return nil, fmt.Errorf("category with name '%s': %w", category.Name, domain.ErrConflict)
	}
	existing.Name = category.Name
	r.s.categories[category.ID] = existing
	return &existing, nil
}

func (r categoryRepo) DeleteCategory(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("DeleteCategory"); err != nil {
		return err
	}
	if _, ok := r.s.categories[id]; !ok {
		return fmt.Errorf("category with id %d: %w", id, domain.ErrNotFound)
	}
	for _, p := range r.s.products {
		if p.product.CategoryID == id {
			return fmt.Errorf("category %d still owns product %d", id, p.product.ID)
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r categoryRepo) ListCategories(_ context.Context, limit, offset int) ([]domain.CategoryWithCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ListCategories"); err != nil {
		return nil, err
	}
	counts := map[int]int{}
	for _, p := range r.s.products {
		counts[p.product.CategoryID]++
	}
	list := make([]domain.CategoryWithCount, 0, len(r.s.categories))
	for id, c := range r.s.categories {
		list = append(list, domain.CategoryWithCount{Category: c, ProductCount: counts[id]})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProductCount != list[j].ProductCount {
			return list[i].ProductCount > list[j].ProductCount
		}
		return list[i].ID < list[j].ID
	})
	if limit <= 0 {
		return list, nil
	}
	return window(list, limit, offset), nil
}

func (r categoryRepo) CountCategories(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("CountCategories"); err != nil {
		return 0, err
	}
	return len(r.s.categories), nil
}

type productRepo struct{ s *Store }

func (r productRepo) view(sp storedProduct) domain.Product {
	p := sp.product
	p.CategoryName = r.s.categories[p.CategoryID].Name
	p.Images = sp.images.Normalize()
	return p
}

func (r productRepo) CreateProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("CreateProduct"); err != nil {
		return nil, err
	}
	if _, ok := r.s.categories[product.CategoryID]; !ok {
		return nil, fmt.Errorf("category with id %d does not exist: %w", product.CategoryID, domain.ErrInvalidArgument)
	}
	images, err := domain.RawImagesFrom(product.Images)
	if err != nil {
		return nil, err
	}
	p := *product
	p.ID = r.s.nextProdID
	r.s.nextProdID++
	p.CreatedAt = r.s.tick()
	p.UpdatedAt = p.CreatedAt
	sp := storedProduct{product: p, images: images}
	r.s.products[p.ID] = sp
	out := r.view(sp)
	return &out, nil
}

func (r productRepo) GetProductByID(_ context.Context, id int) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("GetProductByID"); err != nil {
		return nil, err
	}
	sp, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	out := r.view(sp)
	return &out, nil
}

func (r productRepo) UpdateProduct(_ context.Context, id int, update domain.ProductUpdate) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("UpdateProduct"); err != nil {
		return nil, err
	}
	sp, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	if update.Name != nil {
		sp.product.Name = *update.Name
	}
	if update.Description != nil {
		sp.product.Description = *update.Description
	}
	if update.Price != nil {
		sp.product.Price = *update.Price
	}
	if update.CategoryID != nil {
		if _, ok := r.s.categories[*update.CategoryID]; !ok {
			return nil, fmt.Errorf("category with id %d does not exist: %w", *update.CategoryID, domain.ErrInvalidArgument)
		}
		sp.product.CategoryID = *update.CategoryID
	}
	if update.InStock != nil {
		sp.product.InStock = *update.InStock
	}
	if update.Images != nil {
		images, err := domain.RawImagesFrom(*update.Images)
		if err != nil {
			return nil, err
		}
		sp.images = images
	}
	sp.product.UpdatedAt = r.s.tick()
	r.s.products[id] = sp
	out := r.view(sp)
	return &out, nil
}

func (r productRepo) DeleteProduct(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("DeleteProduct"); err != nil {
		return err
	}
	if _, ok := r.s.products[id]; !ok {
		return fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.products, id)
	return nil
}

func (r productRepo) DeleteProductsByCategory(_ context.Context, categoryID int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("DeleteProductsByCategory"); err != nil {
		return 0, err
	}
	var n int64
	for id, p := range r.s.products {
		if p.product.CategoryID == categoryID {
			delete(r.s.products, id)
			n++
		}
	}
	return n, nil
}

func (r productRepo) filtered(filter domain.ProductFilter) []domain.Product {
	list := []domain.Product{}
	for _, sp := range r.s.products {
		if filter.CategoryID > 0 && sp.product.CategoryID != filter.CategoryID {
			continue
		}
		if filter.InStock != nil && sp.product.InStock != *filter.InStock {
			continue
		}
		list = append(list, r.view(sp))
	}
	sort.Slice(list, func(i, j int) bool {
		switch filter.Sort {
		case domain.SortPriceAsc:
			if c := list[i].Price.Cmp(list[j].Price); c != 0 {
				return c < 0
			}
			return list[i].ID < list[j].ID
		case domain.SortPriceDesc:
			if c := list[i].Price.Cmp(list[j].Price); c != 0 {
				return c > 0
			}
			return list[i].ID > list[j].ID
		default:
			if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
				return list[i].CreatedAt.After(list[j].CreatedAt)
			}
			return list[i].ID > list[j].ID
		}
	})
	return list
}

func (r productRepo) ListProducts(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ListProducts"); err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	return window(r.filtered(filter), limit, filter.Offset), nil
}

func (r productRepo) CountProducts(_ context.Context, filter domain.ProductFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("CountProducts"); err != nil {
		return 0, err
	}
	return len(r.filtered(filter)), nil
}

func (r productRepo) GetProductImages(_ context.Context, id int) (*domain.ProductImages, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("GetProductImages"); err != nil {
		return nil, err
	}
	sp, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	return &domain.ProductImages{ProductID: id, Images: append(domain.RawImages(nil), sp.images...)}, nil
}

func (r productRepo) ListProductImagesByCategory(_ context.Context, categoryID int) ([]domain.ProductImages, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ListProductImagesByCategory"); err != nil {
		return nil, err
	}
	found := []domain.ProductImages{}
	for id, sp := range r.s.products {
		if sp.product.CategoryID == categoryID {
			found = append(found, domain.ProductImages{ProductID: id, Images: append(domain.RawImages(nil), sp.images...)})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ProductID < found[j].ProductID })
	return found, nil
}

type settingsRepo struct{ s *Store }

func (r settingsRepo) GetSetting(_ context.Context, key string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("GetSetting"); err != nil {
		return "", err
	}
	v, ok := r.s.settings[key]
	if !ok {
		return "", fmt.Errorf("setting '%s': %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (r settingsRepo) UpsertSetting(_ context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("UpsertSetting"); err != nil {
		return err
	}
	r.s.settings[strings.TrimSpace(key)] = value
	return nil
}

func window[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
