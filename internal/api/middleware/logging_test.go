package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/c360studio/deadcode/internal/utils"
)

func init() {
	// Disable Gin logging in tests
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard
}

func TestLogging_Success(t *testing.T) {
	router := gin.New()
	router.Use(LoggingWithLogger(utils.NewSilentLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogging_WithQuery(t *testing.T) {
	router := gin.New()
	router.Use(LoggingWithLogger(utils.NewSilentLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test?param=value", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogging_ClientError(t *testing.T) {
	router := gin.New()
	router.Use(LoggingWithLogger(utils.NewSilentLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogging_ServerError(t *testing.T) {
	router := gin.New()
	router.Use(LoggingWithLogger(utils.NewSilentLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogging_WithError(t *testing.T) {
	router := gin.New()
	router.Use(LoggingWithLogger(utils.NewSilentLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.Error(http.ErrAbortHandler)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
