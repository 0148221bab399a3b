package delivery

import (
	"net/http"
	"strconv"

	"decor_admin/internal/domain"
	"decor_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves the read-only public storefront.
type CatalogHandler struct {
	categories usecase.CategoryUseCase
	products   usecase.ProductUseCase
	log        *logrus.Logger
}

func NewCatalogHandler(cuc usecase.CategoryUseCase, puc usecase.ProductUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		categories: cuc,
		products:   puc,
		log:        logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("/categories", h.ListCategories)
		catalog.GET("/products", h.ListProducts)
		catalog.GET("/products/:id", h.GetProduct)
	}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListAllCategories(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list catalog categories: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve categories")
		return
	}
	if categories == nil {
		categories = []domain.CategoryWithCount{}
	}
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := domain.ProductFilter{Sort: domain.ProductSort(c.Query("sort"))}

	var err error
	if filter.CategoryID, err = queryInt(c, "category_id", 0); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if raw := c.Query("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "query parameter 'in_stock' must be a boolean")
			return
		}
		filter.InStock = &inStock
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	perPage, err := queryInt(c, "per_page", usecase.CatalogPageSize)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.products.Catalog(c.Request.Context(), filter, page, perPage)
	if err != nil {
		h.log.Warnf("Failed to list catalog products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve products: "+err.Error())
		return
	}
	products := make([]domain.Product, len(result.Products))
	for i, p := range result.Products {
		products[i] = publicProduct(p)
	}
	result.Products = products
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", result)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.products.GetProductByID(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve product: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", publicProduct(*product))
}

// publicProduct strips image delete URLs before a product leaves the admin area.
func publicProduct(p domain.Product) domain.Product {
	images := make([]domain.ImageRef, len(p.Images))
	for i, img := range p.Images {
		images[i] = domain.ImageRef{URL: img.URL}
	}
	p.Images = images
	return p
}
