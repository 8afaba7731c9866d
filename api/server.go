// Package api exposes video generation over HTTP.
package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quotereel/pipeline"
)

// Server handles HTTP requests for quote video generation.
type Server struct {
	processor *pipeline.Processor
}

func NewServer(proc *pipeline.Processor) *Server {
	return &Server{processor: proc}
}

// GenerateResponse is the JSON reply for POST /api/generate.
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.POST("/api/generate", s.handleGenerate)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleGenerate accepts a pipeline.Job, validates it, and kicks off the run
// in the background. The response returns immediately; generation takes
// minutes and clients poll the output directory (or Kafka) for results.
func (s *Server) handleGenerate(c *gin.Context) {
	job := pipeline.DefaultJob()
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, GenerateResponse{
			Success: false,
			Message: "Invalid JSON payload",
			Error:   err.Error(),
		})
		return
	}

	if job.QuoteCount <= 0 {
		c.JSON(http.StatusBadRequest, GenerateResponse{
			Success: false,
			Message: "quote_count must be positive",
		})
		return
	}
	if job.DurationSeconds <= 0 {
		c.JSON(http.StatusBadRequest, GenerateResponse{
			Success: false,
			Message: "duration_seconds must be positive",
		})
		return
	}

	log.Printf("Received generation request: id=%s count=%d", job.ID, job.QuoteCount)

	go func() {
		if _, err := s.processor.Run(context.Background(), job); err != nil {
			log.Printf("Generation failed for job %s: %v", job.ID, err)
		}
	}()

	c.JSON(http.StatusAccepted, GenerateResponse{
		Success: true,
		Message: "Video generation started",
		JobID:   job.ID,
	})
}
