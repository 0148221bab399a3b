package delivery

import (
	"net/http"

	"decor_admin/internal/domain"
	"decor_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	useCase usecase.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc usecase.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/send-order", h.SendOrder)
}

func (h *OrderHandler) SendOrder(c *gin.Context) {
	var order domain.OrderRequest
	if err := c.ShouldBindJSON(&order); err != nil {
		h.log.Warnf("Invalid order request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.SendOrder(c.Request.Context(), order); err != nil {
		h.log.Errorf("Failed to send order: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to send order")
		return
	}
	SuccessResponse(c, http.StatusOK, "Order sent successfully", nil)
}
