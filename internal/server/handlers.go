package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fieldcorrect/internal/correction"
	"fieldcorrect/internal/llm"
)

type correctionRequest struct {
	FieldName string `json:"field_name" binding:"required"`
	// Pointer so "required" rejects a missing key while "" stays a legal
	// value to validate.
	CurrentValue     *string                      `json:"current_value" binding:"required"`
	SpecificGuidance *correction.GuidanceOverride `json:"specific_guidance"`
}

type guidanceRequest struct {
	CompanyID           string                          `json:"company_id" binding:"required"`
	FrequentCorrections []correction.FrequentCorrection `json:"frequent_corrections" binding:"required"`
}

type validationRequest struct {
	Examples []correction.ValidationExample `json:"examples" binding:"required"`
}

type batchCorrectionRequest struct {
	Items     []correction.BatchItem `json:"items" binding:"required"`
	CompanyID string                 `json:"company_id"`
}

func welcomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the API 👋"})
}

func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (s *Server) healthHandler(c *gin.Context) {
	status := "ok"
	last := s.monitor.Last()
	if !last.CheckedAt.IsZero() && !last.Healthy {
		status = "degraded"
	}
	if !s.gateway.Configured() {
		status = "disabled"
	}

	resp := gin.H{
		"status":         status,
		"provider":       s.gateway.Provider(),
		"model":          s.gateway.Model(),
		"llm_configured": s.gateway.Configured(),
	}
	if !last.CheckedAt.IsZero() {
		probe := gin.H{
			"healthy":    last.Healthy,
			"checked_at": last.CheckedAt.UTC().Format(time.RFC3339),
			"latency_ms": last.Latency.Milliseconds(),
		}
		if last.Error != "" {
			probe["error"] = last.Error
		}
		resp["last_probe"] = probe
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) correctHandler(c *gin.Context) {
	var req correctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	verdict, err := s.svc.Correct(c.Request.Context(), req.FieldName, *req.CurrentValue, req.SpecificGuidance)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

func (s *Server) guidanceHandler(c *gin.Context) {
	var req guidanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	synthesis, err := s.svc.BuildGuidance(c.Request.Context(), req.CompanyID, req.FrequentCorrections)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, synthesis)
}

func (s *Server) validateHandler(c *gin.Context) {
	var req validationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	summary, err := s.svc.ValidatePatterns(c.Request.Context(), req.Examples)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// batchCorrectHandler picks the dispatch strategy by batch size: batches
// larger than the configured threshold run concurrently, the rest
// sequentially.
func (s *Server) batchCorrectHandler(c *gin.Context) {
	var req batchCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	strategy := correction.StrategySequential
	if len(req.Items) > s.cfg.BatchConcurrentThreshold {
		strategy = correction.StrategyConcurrent
	}
	result := s.batch.Dispatch(c.Request.Context(), req.CompanyID, req.Items, strategy)
	c.JSON(http.StatusOK, result)
}

// writeError maps pipeline failures onto transport statuses: missing
// configuration 400, provider failures 503, unparseable model output 502,
// everything else 500.
func writeError(c *gin.Context, err error) {
	var gatewayErr *llm.GatewayError
	var malformedErr *correction.MalformedResponseError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &malformedErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("unexpected handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
