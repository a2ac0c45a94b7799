package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/deadcode/internal/analysis"
	"github.com/c360studio/deadcode/internal/api/middleware"
	"github.com/c360studio/deadcode/internal/model"
)

// ServerConfig holds server configuration for a `deadcode serve` run.
type ServerConfig struct {
	EnableAuth  bool
	AuthTokens  []string
	CORSOrigins []string
}

// Server exposes findings over HTTP: a health check and a /analyze endpoint
// that runs the same pipeline the CLI does against a project path supplied
// in the request, per §6's "deadcode serve runs the analyzer behind an
// HTTP API for CI dashboards and editor integrations that prefer polling
// a server over shelling out".
type Server struct {
	config  *ServerConfig
	metrics *metrics
	promReg *prometheus.Registry
}

// NewServer creates a new API server.
func NewServer(config *ServerConfig) *Server {
	if config == nil {
		config = &ServerConfig{
			EnableAuth:  false,
			AuthTokens:  []string{},
			CORSOrigins: []string{"*"},
		}
	}
	promReg := prometheus.NewRegistry()
	return &Server{config: config, metrics: newMetrics(promReg), promReg: promReg}
}

// SetupRouter creates and configures the Gin router with all middleware and routes.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logging())
	r.Use(s.metrics.middleware())

	corsConfig := middleware.NewCORSConfig(s.config.CORSOrigins)
	r.Use(middleware.CORS(corsConfig))

	authConfig := middleware.NewAuthConfig(s.config.EnableAuth, s.config.AuthTokens)
	r.Use(middleware.Auth(authConfig))

	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all API routes.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.healthCheck)
	r.GET("/metrics", metricsHandler(s.promReg))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyze", s.analyze)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "deadcode analysis server is running",
	})
}

// analyzeRequest mirrors the CLI's own target/exclude/retain/entry-point
// flags (§6), scoped to one HTTP call instead of argv.
type analyzeRequest struct {
	Root              string   `json:"root" binding:"required"`
	Targets           []string `json:"targets"`
	Exclude           []string `json:"exclude"`
	RetainPatterns    []string `json:"retain_patterns"`
	EntryPoints       []string `json:"entry_points"`
	ComponentPatterns []string `json:"component_patterns"`
	Detect            []string `json:"detect"`
	MinConfidence     string   `json:"min_confidence"`
	RuntimeOnly       bool     `json:"runtime_only"`
	DetectCycles      bool     `json:"detect_cycles"`
}

type analyzeResponse struct {
	TotalFindings int             `json:"total_findings"`
	Findings      []model.Finding `json:"findings"`
	ZombieCycles  int             `json:"zombie_cycles"`
}

// analyze runs the pipeline against req.Root and returns the aggregated
// findings as JSON. Each call is independent; the server holds no
// cross-request state (§5: the pipeline itself is the unit of concurrency
// safety, not the server).
func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := analysis.Options{
		Root:              req.Root,
		Targets:           req.Targets,
		Excludes:          req.Exclude,
		RetainPatterns:    req.RetainPatterns,
		EntryPoints:       req.EntryPoints,
		ComponentPatterns: req.ComponentPatterns,
		RuntimeOnly:       req.RuntimeOnly,
		DetectCycles:      req.DetectCycles,
		Workers:           0,
	}
	if len(req.Detect) > 0 {
		opts.DetectCodes = make(map[model.Code]bool, len(req.Detect))
		for _, code := range req.Detect {
			opts.DetectCodes[model.Code(code)] = true
		}
	}
	if req.MinConfidence != "" {
		if conf, ok := model.ParseConfidence(req.MinConfidence); ok {
			opts.MinConfidence = conf
			opts.HasMinConf = true
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized min_confidence: " + req.MinConfidence})
			return
		}
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	start := time.Now()
	result, err := analysis.Run(ctx, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.metrics.analyzeDuration.Observe(time.Since(start).Seconds())
	s.metrics.analyzeFindings.Observe(float64(len(result.Findings)))

	c.JSON(http.StatusOK, analyzeResponse{
		TotalFindings: len(result.Findings),
		Findings:      result.Findings,
		ZombieCycles:  len(result.ZombieCycles),
	})
}
