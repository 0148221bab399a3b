package delivery

import (
	"context"
	"net/http"
	"time"

	"decor_admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxUploadMemory = 32 << 20

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Category *CategoryHandler
	Product  *ProductHandler
	Catalog  *CatalogHandler
	Upload   *UploadHandler
	Auth     *AuthHandler
	Settings *SettingsHandler
	Order    *OrderHandler
	Stats    *StatsHandler
}

// NewRouter mounts the public API under /api and the admin API under
// /api/admin behind the session guard.
func NewRouter(h Handlers, validator middleware.TokenValidator, db Pinger, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxUploadMemory
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", healthCheck(db))

	api := router.Group("/api")
	h.Catalog.RegisterRoutes(api)
	h.Order.RegisterRoutes(api)
	h.Auth.RegisterRoutes(api)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminGuard(validator, logger))
	h.Category.RegisterRoutes(admin)
	h.Product.RegisterRoutes(admin)
	h.Upload.RegisterRoutes(admin)
	h.Settings.RegisterRoutes(admin)
	h.Stats.RegisterRoutes(admin)

	return router
}

func healthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			ErrorResponse(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		SuccessResponse(c, http.StatusOK, "OK", nil)
	}
}
