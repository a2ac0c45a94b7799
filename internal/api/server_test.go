package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard
}

func TestSetupRouter(t *testing.T) {
	server := NewServer(&ServerConfig{EnableAuth: false, CORSOrigins: []string{"*"}})
	router := server.SetupRouter()
	assert.NotNil(t, router)
}

func TestHealthCheck(t *testing.T) {
	server := NewServer(&ServerConfig{EnableAuth: false, CORSOrigins: []string{"*"}})
	router := gin.New()
	server.RegisterRoutes(router)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck_WithAuth(t *testing.T) {
	server := NewServer(&ServerConfig{EnableAuth: true, AuthTokens: []string{"test-token"}, CORSOrigins: []string{"*"}})
	router := server.SetupRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "health check should bypass auth")
}

func TestCORSHeaders(t *testing.T) {
	server := NewServer(&ServerConfig{EnableAuth: false, CORSOrigins: []string{"http://example.com"}})
	router := server.SetupRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeEndpoint_RequiresAuth(t *testing.T) {
	server := NewServer(&ServerConfig{EnableAuth: true, AuthTokens: []string{"valid-token"}, CORSOrigins: []string{"*"}})
	router := server.SetupRouter()

	req := httptest.NewRequest("POST", "/api/v1/analyze", bytes.NewBufferString(`{"root":"."}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnalyzeEndpoint_BadRequest(t *testing.T) {
	server := NewServer(nil)
	router := server.SetupRouter()

	req := httptest.NewRequest("POST", "/api/v1/analyze", bytes.NewBufferString(`not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpoint_RunsPipeline(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "AndroidManifest.xml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`<?xml version="1.0"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example">
  <application/>
</manifest>
`), 0o644))

	server := NewServer(nil)
	router := server.SetupRouter()

	body, _ := json.Marshal(analyzeRequest{Root: dir})
	req := httptest.NewRequest("POST", "/api/v1/analyze", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
}

func TestNewServer_DefaultConfig(t *testing.T) {
	server := NewServer(nil)
	assert.False(t, server.config.EnableAuth)
	assert.NotEmpty(t, server.config.CORSOrigins)
}

func TestNewServer_CustomConfig(t *testing.T) {
	config := &ServerConfig{
		EnableAuth:  true,
		AuthTokens:  []string{"token1", "token2"},
		CORSOrigins: []string{"http://example.com"},
	}
	server := NewServer(config)
	assert.True(t, server.config.EnableAuth)
	assert.Len(t, server.config.AuthTokens, 2)
}
