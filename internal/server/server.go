package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fieldcorrect/internal/config"
	"fieldcorrect/internal/correction"
	"fieldcorrect/internal/llm"
)

// Corrector is the orchestration surface the handlers call into.
type Corrector interface {
	Correct(ctx context.Context, fieldName, currentValue string, override *correction.GuidanceOverride) (correction.CorrectionVerdict, error)
	BuildGuidance(ctx context.Context, companyID string, corrections []correction.FrequentCorrection) (correction.GuidanceSynthesis, error)
	ValidatePatterns(ctx context.Context, examples []correction.ValidationExample) (correction.ValidationSummary, error)
}

// Batcher dispatches batches of correction items.
type Batcher interface {
	Dispatch(ctx context.Context, companyID string, items []correction.BatchItem, strategy correction.Strategy) correction.BatchResult
}

// Server hosts the correction API over HTTP.
type Server struct {
	cfg     config.Config
	svc     Corrector
	batch   Batcher
	gateway *llm.Client
	monitor *llm.HealthMonitor
	engine  *gin.Engine
}

func New(cfg config.Config, svc Corrector, batch Batcher, gateway *llm.Client, monitor *llm.HealthMonitor) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		svc:     svc,
		batch:   batch,
		gateway: gateway,
		monitor: monitor,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	engine.GET("/", welcomeHandler)
	engine.GET("/ping", pingHandler)
	engine.GET("/health", s.healthHandler)
	engine.POST("/correct", s.correctHandler)
	engine.POST("/guidance", s.guidanceHandler)
	engine.POST("/validate", s.validateHandler)
	engine.POST("/batch-correct", s.batchCorrectHandler)

	s.engine = engine
	return s
}

// Run blocks serving HTTP on the configured port.
func (s *Server) Run() error {
	return s.engine.Run(fmt.Sprintf(":%d", s.cfg.Port))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// requestLogger tags every request with an id, echoes it in X-Request-ID
// and writes one access log line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.Printf("http request id=%s method=%s path=%s status=%d duration=%s",
			requestID, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
