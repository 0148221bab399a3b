package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryWithCount struct {
	Category
	ProductCount int `json:"productCount"`
}

type Product struct {
	ID           int             `json:"id"`
	CategoryID   int             `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	InStock      bool            `json:"inStock"`
	Images       []ImageRef      `json:"images"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductCreate is the admin form for a new product. InStock defaults to true.
type ProductCreate struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int             `json:"categoryId"`
	InStock     *bool           `json:"inStock"`
	Images      []ImageRef      `json:"images"`
}

// ProductUpdate carries a partial product update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *int             `json:"categoryId"`
	InStock     *bool            `json:"inStock"`
	Images      *[]ImageRef      `json:"images"`
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.CategoryID == nil && u.InStock == nil && u.Images == nil
}

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
)

type ProductFilter struct {
	CategoryID int
	InStock    *bool
	Sort       ProductSort
	Limit      int
	Offset     int
}

type Pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
}

func NewPagination(total, page, perPage int) Pagination {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return Pagination{Total: total, Pages: pages, CurrentPage: page, PerPage: perPage}
}

type CategoryPage struct {
	Categories []CategoryWithCount `json:"categories"`
	Pagination Pagination          `json:"pagination"`
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

type NamedValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Stats struct {
	TotalProducts    int          `json:"totalProducts"`
	TotalCategories  int          `json:"totalCategories"`
	ActiveProducts   int          `json:"activeProducts"`
	InactiveProducts int          `json:"inactiveProducts"`
	CategoryData     []NamedValue `json:"categoryData"`
	StockStatusData  []NamedValue `json:"stockStatusData"`
}

type TelegramSettings struct {
	BotToken    string `json:"botToken"`
	AdminUserID string `json:"adminUserId"`
}

const (
	ContactPhone    = "phone"
	ContactWhatsApp = "whatsapp"
)

type OrderRequest struct {
	Name            string           `json:"name" binding:"required"`
	Phone           string           `json:"phone" binding:"required"`
	EventDate       string           `json:"eventDate"`
	Comment         string           `json:"comment"`
	ContactType     string           `json:"contactType" binding:"required,oneof=phone whatsapp"`
	ProductName     string           `json:"productName" binding:"required"`
	ProductCategory string           `json:"productCategory"`
	ProductPrice    *decimal.Decimal `json:"productPrice"`
}

type DeletionTarget string

const (
	TargetCategory DeletionTarget = "category"
	TargetProduct  DeletionTarget = "product"
)

// DeletionResult confirms a finished cascade. ImagesCleaned counts the image
// references that were sent to the host, not the ones the host accepted.
type DeletionResult struct {
	Target          DeletionTarget `json:"target"`
	CategoryID      int            `json:"categoryId,omitempty"`
	ProductID       int            `json:"productId,omitempty"`
	ProductsRemoved int            `json:"productsRemoved"`
	ImagesCleaned   int            `json:"imagesCleaned"`
}

func (r DeletionResult) Message() string {
	if r.Target == TargetCategory {
		return fmt.Sprintf("Category %d deleted with %d products and %d images removed",
			r.CategoryID, r.ProductsRemoved, r.ImagesCleaned)
	}
	return fmt.Sprintf("Product %d deleted with %d images removed", r.ProductID, r.ImagesCleaned)
}
