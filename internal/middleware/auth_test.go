package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"decor_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	valid string
}

func (v stubValidator) ValidateToken(token string) (*usecase.SessionClaims, error) {
	if token != v.valid {
		return nil, errors.New("bad token")
	}
	return &usecase.SessionClaims{Role: usecase.RoleAdmin}, nil
}

func newGuardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	router.Use(RequestID())
	router.Use(AdminGuard(stubValidator{valid: "good"}, logger))
	router.GET("/private", func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Role)
	})
	return router
}

func TestAdminGuard(t *testing.T) {
	router := newGuardedRouter()

	tests := []struct {
		name   string
		cookie string
		header string
		want   int
	}{
		{name: "no credentials", want: http.StatusUnauthorized},
		{name: "valid cookie", cookie: "good", want: http.StatusOK},
		{name: "invalid cookie", cookie: "bad", want: http.StatusUnauthorized},
		{name: "valid bearer", header: "Bearer good", want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good", want: http.StatusOK},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "cookie wins over header", cookie: "bad", header: "Bearer good", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, usecase.RoleAdmin, w.Body.String())
			} else {
				assert.JSONEq(t, `{"Status":"Fail","Message":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	router := newGuardedRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestRequestLoggerTagsEntries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := logtest.NewNullLogger()

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.GET("/items/:id", func(c *gin.Context) {
		Log(c, logger).Info("handling")
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "handling", entries[0].Message)
	assert.Equal(t, "req-7", entries[0].Data["request_id"])

	access := entries[1]
	assert.Equal(t, logrus.WarnLevel, access.Level)
	assert.Equal(t, "req-7", access.Data["request_id"])
	assert.Equal(t, http.StatusNotFound, access.Data["status_code"])
	assert.Equal(t, "/items/:id", access.Data["path"])
	assert.Equal(t, "/items/7", access.Data["raw_path"])
}
