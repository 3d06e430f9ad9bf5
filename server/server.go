// Package server exposes a loaded classifier over HTTP.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/classify"
	"go.uber.org/zap"
)

// Server routes HTTP requests to a classifier that was loaded once at start up. When loading
// failed the server still answers, but refuses to classify.
type Server struct {
	router  *gin.Engine
	clf     *classify.Classifier
	loadErr error
	store   *artifact.Store
	logger  *zap.Logger
}

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// BatchRequest is the body of POST /api/v1/classify/batch.
type BatchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// NewServer creates a server. clf may be nil, in which case loadErr explains why.
func NewServer(clf *classify.Classifier, loadErr error, store *artifact.Store, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		router:  router,
		clf:     clf,
		loadErr: loadErr,
		store:   store,
		logger:  logger,
	}
	if clf == nil && loadErr == nil {
		s.loadErr = errors.New("no classifier loaded")
	}
	s.RegisterRoutes(router)
	return s
}

// RegisterRoutes adds the server's routes to r.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	api := r.Group("/api/v1")
	api.POST("/classify", s.classify)
	api.POST("/classify/batch", s.batch)
	api.GET("/metrics", s.metrics)
	api.GET("/confusion_matrix.png", s.confusionMatrix)
	api.GET("/examples", s.examples)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until the server fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("server starting", zap.String("addr", addr), zap.Bool("ready", s.clf != nil))
	return s.router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{"status": "ok", "ready": s.clf != nil}
	if s.loadErr != nil {
		body["error"] = s.loadErr.Error()
	}
	c.JSON(http.StatusOK, body)
}

// unavailable reports whether the classifier is missing, answering the request if so.
func (s *Server) unavailable(c *gin.Context) bool {
	if s.clf != nil {
		return false
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": s.loadErr.Error()})
	return true
}

// classify handles POST /api/v1/classify
func (s *Server) classify(c *gin.Context) {
	if s.unavailable(c) {
		return
	}
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.JSON(http.StatusOK, s.clf.Classify(req.Text))
}

// batch handles POST /api/v1/classify/batch
func (s *Server) batch(c *gin.Context) {
	if s.unavailable(c) {
		return
	}
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	results := make([]classify.Result, len(req.Texts))
	for i, text := range req.Texts {
		results[i] = s.clf.Classify(text)
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// metrics handles GET /api/v1/metrics
func (s *Server) metrics(c *gin.Context) {
	if s.clf != nil {
		c.JSON(http.StatusOK, s.clf.Metrics)
		return
	}
	m, err := s.store.Metrics()
	if err != nil {
		s.artifactError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// confusionMatrix handles GET /api/v1/confusion_matrix.png
func (s *Server) confusionMatrix(c *gin.Context) {
	b, err := s.store.ConfusionMatrix()
	if err != nil {
		s.artifactError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// examples handles GET /api/v1/examples
func (s *Server) examples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": classify.Examples})
}

func (s *Server) artifactError(c *gin.Context, err error) {
	var missing *artifact.ArtifactMissingError
	if errors.As(err, &missing) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error("Failed to read artifact", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read artifact"})
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
