package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

// Comparer is the engine surface the delivery layer depends on.
type Comparer interface {
	Compare(ctx context.Context, reference string) (*domain.ComparisonResult, error)
}

// CompareRequest is the inbound payload for a comparison.
type CompareRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	comparer Comparer
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(comparer Comparer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{comparer: comparer, logger: logger}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricelens-backend",
		"version": "1.0.0",
	})
}

// Compare handles price comparison requests.
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference is required"})
		return
	}

	result, err := h.comparer.Compare(c.Request.Context(), req.Reference)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("comparison failed", zap.String("reference", req.Reference), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "comparison failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
