package middleware

import (
	"net/http"
	"strings"

	"decor_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie = "admin-token"
	claimsKey     = "sessionClaims"
)

type TokenValidator interface {
	ValidateToken(token string) (*usecase.SessionClaims, error)
}

// AdminGuard accepts the session cookie or an "Authorization: Bearer" header.
func AdminGuard(validator TokenValidator, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, err := c.Cookie(SessionCookie)
		if err != nil || rawToken == "" {
			rawToken = bearerToken(c.GetHeader("Authorization"))
		}
		if rawToken == "" {
			log.Warnf("Middleware: No session token on %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Unauthorized"})
			return
		}

		claims, err := validator.ValidateToken(rawToken)
		if err != nil {
			log.Warnf("Middleware: Rejected session token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Unauthorized"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// Claims returns the session validated by AdminGuard, if any.
func Claims(c *gin.Context) (*usecase.SessionClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*usecase.SessionClaims)
	return claims, ok
}
