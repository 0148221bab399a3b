package domain

import "context"

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	GetCategoryByID(ctx context.Context, id int) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) (*Category, error)
	DeleteCategory(ctx context.Context, id int) error
	// ListCategories orders by product count, most products first. A
	// non-positive limit returns every category.
	ListCategories(ctx context.Context, limit, offset int) ([]CategoryWithCount, error)
	CountCategories(ctx context.Context) (int, error)
}
