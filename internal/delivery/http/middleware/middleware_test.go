package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := serve(r, "/", nil)
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	w = serve(r, "/", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Body.String())

	w = serve(r, "/", map[string]string{RequestIDHeader: strings.Repeat("x", 200)})
	assert.Len(t, w.Body.String(), 36)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://me.example.com"}))
	r.GET("/api/sections/facts", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, "/api/sections/facts", map[string]string{"Origin": "https://me.example.com"})
	assert.Equal(t, "https://me.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, "/api/sections/facts", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/sections/facts", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRFMiddleware(false))
	r.GET("/admin/api/sections", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PUT("/admin/api/sections/facts", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := serve(r, "/admin/api/sections", nil)
	require.Equal(t, http.StatusOK, get.Code)
	cookies := get.Result().Cookies()
	require.NotEmpty(t, cookies)
	token := cookies[0].Value

	put := func(header string) int {
		req := httptest.NewRequest(http.MethodPut, "/admin/api/sections/facts", nil)
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: token})
		if header != "" {
			req.Header.Set(CSRFTokenHeaderName, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, put(""))
	assert.Equal(t, http.StatusForbidden, put("wrong"))
	assert.Equal(t, http.StatusOK, put(token))
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/invalid", func(c *gin.Context) {
		_ = c.Error(apperror.Validation(map[string]string{"items[0].title": "Title must be at least 2 characters"}))
	})
	r.GET("/internal", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})

	w := serve(r, "/invalid", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"items[0].title"`)

	w = serve(r, "/internal", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestCORSMiddlewareLeavesGatedPreflights(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://me.example.com"}, "/admin"))
	r.Use(func(c *gin.Context) {
		c.String(http.StatusTeapot, "gate")
		c.Abort()
	})

	req := httptest.NewRequest(http.MethodOptions, "/admin/api/sections", nil)
	req.Header.Set("Origin", "https://me.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	// /administrator is not under the prefix
	req = httptest.NewRequest(http.MethodOptions, "/administrator", nil)
	req.Header.Set("Origin", "https://me.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
