package delivery

import (
	"net/http"
	"time"

	"decor_admin/internal/middleware"
	"decor_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	useCase      usecase.AuthUseCase
	cookieSecure bool
	log          *logrus.Logger
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(uc usecase.AuthUseCase, cookieSecure bool, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase:      uc,
		cookieSecure: cookieSecure,
		log:          logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	auth := router.Group("/auth")
	{
		auth.POST("", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Password is required")
		return
	}

	token, expiresAt, err := h.useCase.Login(c.Request.Context(), req.Password)
	if err != nil {
		h.log.Warnf("Login failed from %s: %v", c.ClientIP(), err)
		status := mapErrorToStatus(err)
		if status == http.StatusUnauthorized {
			ErrorResponse(c, status, "Invalid password")
			return
		}
		ErrorResponse(c, status, "Login failed")
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.cookieSecure, true)
	SuccessResponse(c, http.StatusOK, "Logged in", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	SuccessResponse(c, http.StatusOK, "Logged out", nil)
}
