package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"decor_admin/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const productColumns = `
        p.id, p.category_id, c.name, p.name, p.description, p.price,
        p.in_stock, p.images, p.created_at, p.updated_at`

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var images domain.RawImages
	err := row.Scan(
		&product.ID,
		&product.CategoryID,
		&product.CategoryName,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.InStock,
		&images,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.Images = images.Normalize()
	return product, nil
}

func (r *postgresProductRepository) translateWriteError(err error, product string, categoryID int) error {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}
	switch pqErr.Code {
	case foreignKeyViolation:
		r.log.Warnf("Product '%s' references non-existent category ID: %d", product, categoryID)
		return fmt.Errorf("category with id %d does not exist: %w", categoryID, domain.ErrInvalidArgument)
	case checkViolation:
		r.log.Warnf("Check constraint violation for product '%s': %s", product, pqErr.Message)
		return fmt.Errorf("product data constraint violation: %s: %w", pqErr.Message, domain.ErrInvalidArgument)
	}
	return nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	images, err := domain.RawImagesFrom(product.Images)
	if err != nil {
		return nil, fmt.Errorf("could not encode product images: %w", err)
	}

	query := `
        INSERT INTO products (category_id, name, description, price, in_stock, images)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	var id int
	err = r.db.QueryRowContext(ctx, query,
		product.CategoryID, product.Name, product.Description, product.Price, product.InStock, images,
	).Scan(&id)
	if err != nil {
		if translated := r.translateWriteError(err, product.Name, product.CategoryID); translated != nil {
			return nil, translated
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created successfully with ID: %d, Name: %s", id, product.Name)
	return r.GetProductByID(ctx, id)
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `SELECT` + productColumns + `
        FROM products p
        JOIN categories c ON c.id = p.category_id
        WHERE p.id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %d not found", id)
			return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}

	r.log.Debugf("Product retrieved successfully with ID: %d", id)
	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, id int, update domain.ProductUpdate) (*domain.Product, error) {
	if update.IsEmpty() {
		r.log.Infof("Repository: No fields provided for product update ID %d. Returning current product.", id)
		return r.GetProductByID(ctx, id)
	}

	args := []interface{}{}
	setClauses := []string{}
	argCounter := 1
	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.Price != nil {
		set("price", *update.Price)
	}
	if update.CategoryID != nil {
		set("category_id", *update.CategoryID)
	}
	if update.InStock != nil {
		set("in_stock", *update.InStock)
	}
	if update.Images != nil {
		images, err := domain.RawImagesFrom(*update.Images)
		if err != nil {
			return nil, fmt.Errorf("could not encode product images: %w", err)
		}
		set("images", images)
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	query := "UPDATE products SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", argCounter)
	args = append(args, id)

	r.log.Debugf("Repository: Executing partial update query for ID %d: %s", id, query)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		catID := 0
		if update.CategoryID != nil {
			catID = *update.CategoryID
		}
		if translated := r.translateWriteError(err, fmt.Sprintf("#%d", id), catID); translated != nil {
			return nil, translated
		}
		r.log.Errorf("Repository: Failed to execute partial update for product ID %d: %v", id, err)
		return nil, fmt.Errorf("could not partially update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after partial update for ID %d: %v", id, err)
		return nil, fmt.Errorf("could not confirm product update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Product with ID %d not found for update (0 rows affected)", id)
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}

	r.log.Infof("Repository: Partial update successful for product ID %d. Fetching updated product.", id)
	return r.GetProductByID(ctx, id)
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.log.Errorf("Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product ID %d: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %d", id)
		return fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	r.log.Infof("Product deleted successfully with ID: %d", id)
	return nil
}

func (r *postgresProductRepository) DeleteProductsByCategory(ctx context.Context, categoryID int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		r.log.Errorf("Failed to delete products of category ID %d: %v", categoryID, err)
		return 0, fmt.Errorf("could not delete products of category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting products of category ID %d: %v", categoryID, err)
		return 0, fmt.Errorf("could not confirm products deletion: %w", err)
	}
	r.log.Infof("Deleted %d products of category ID %d", rowsAffected, categoryID)
	return rowsAffected, nil
}

func buildProductWhere(filter domain.ProductFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.InStock != nil {
		args = append(args, *filter.InStock)
		conditions = append(conditions, fmt.Sprintf("p.in_stock = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func orderByClause(sort domain.ProductSort) string {
	switch sort {
	case domain.SortPriceAsc:
		return " ORDER BY p.price ASC, p.id ASC"
	case domain.SortPriceDesc:
		return " ORDER BY p.price DESC, p.id DESC"
	default:
		return " ORDER BY p.created_at DESC, p.id DESC"
	}
}

func (r *postgresProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := buildProductWhere(filter)
	query := `SELECT` + productColumns + `
        FROM products p
        JOIN categories c ON c.id = p.category_id` + where + orderByClause(filter.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Failed to list products with limit %d, offset %d: %v", limit, offset, err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	r.log.Infof("Retrieved %d products (limit: %d, offset: %d)", len(products), limit, offset)
	return products, nil
}

func (r *postgresProductRepository) CountProducts(ctx context.Context, filter domain.ProductFilter) (int, error) {
	where, args := buildProductWhere(filter)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		r.log.Errorf("Failed to count products: %v", err)
		return 0, fmt.Errorf("could not count products: %w", err)
	}
	return total, nil
}

func (r *postgresProductRepository) GetProductImages(ctx context.Context, id int) (*domain.ProductImages, error) {
	found := &domain.ProductImages{}
	err := r.db.QueryRowContext(ctx, `SELECT id, images FROM products WHERE id = $1`, id).Scan(&found.ProductID, &found.Images)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %d not found while locating images", id)
			return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to read images of product ID %d: %v", id, err)
		return nil, fmt.Errorf("could not read product images: %w", err)
	}
	return found, nil
}

func (r *postgresProductRepository) ListProductImagesByCategory(ctx context.Context, categoryID int) ([]domain.ProductImages, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, images FROM products WHERE category_id = $1 ORDER BY id ASC`, categoryID)
	if err != nil {
		r.log.Errorf("Failed to read product images for category %d: %v", categoryID, err)
		return nil, fmt.Errorf("could not read product images by category: %w", err)
	}
	defer rows.Close()

	found := []domain.ProductImages{}
	for rows.Next() {
		var item domain.ProductImages
		if err := rows.Scan(&item.ProductID, &item.Images); err != nil {
			r.log.Errorf("Failed to scan product images row for category %d: %v", categoryID, err)
			return nil, fmt.Errorf("error scanning product images: %w", err)
		}
		found = append(found, item)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during product images iteration for category %d: %v", categoryID, err)
		return nil, fmt.Errorf("error iterating product images: %w", err)
	}
	return found, nil
}
