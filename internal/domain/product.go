// domain/product.go
package domain

import "context"

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProductByID(ctx context.Context, id int) (*Product, error)

	UpdateProduct(ctx context.Context, id int, update ProductUpdate) (*Product, error)

	DeleteProduct(ctx context.Context, id int) error
	DeleteProductsByCategory(ctx context.Context, categoryID int) (int64, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	CountProducts(ctx context.Context, filter ProductFilter) (int, error)

	GetProductImages(ctx context.Context, id int) (*ProductImages, error)
	ListProductImagesByCategory(ctx context.Context, categoryID int) ([]ProductImages, error)
}
