package delivery

import (
	"net/http"

	"decor_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type StatsHandler struct {
	useCase usecase.StatsUseCase
	log     *logrus.Logger
}

func NewStatsHandler(uc usecase.StatsUseCase, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *StatsHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/stats", h.GetStats)
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.useCase.GetStats(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to compute stats: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch statistics")
		return
	}
	SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", stats)
}
