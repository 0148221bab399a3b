package delivery

import (
	"errors"
	"net/http"

	"decor_admin/internal/domain"
	"decor_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SettingsHandler struct {
	useCase usecase.SettingsUseCase
	log     *logrus.Logger
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func NewSettingsHandler(uc usecase.SettingsUseCase, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *SettingsHandler) RegisterRoutes(router gin.IRouter) {
	settings := router.Group("/settings")
	{
		settings.POST("/password", h.ChangePassword)
		settings.GET("/telegram", h.GetTelegram)
		settings.POST("/telegram", h.UpdateTelegram)
	}
}

func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.ChangePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		h.log.Warnf("Failed to change password: %v", err)
		if errors.Is(err, domain.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Account not found")
			return
		}
		ErrorResponse(c, mapErrorToStatus(err), "Failed to change password: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Password updated successfully", nil)
}

func (h *SettingsHandler) GetTelegram(c *gin.Context) {
	settings, err := h.useCase.GetTelegram(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to read telegram settings: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve telegram settings")
		return
	}
	SuccessResponse(c, http.StatusOK, "Telegram settings retrieved successfully", settings)
}

func (h *SettingsHandler) UpdateTelegram(c *gin.Context) {
	var req domain.TelegramSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.UpdateTelegram(c.Request.Context(), req); err != nil {
		h.log.Warnf("Failed to update telegram settings: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update telegram settings: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Telegram settings updated successfully", nil)
}
