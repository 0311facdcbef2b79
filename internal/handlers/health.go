package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contact-service/internal/services"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	provider services.Provider
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(provider services.Provider) *HealthHandler {
	return &HealthHandler{provider: provider}
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "contact-service",
	})
}

// Livez returns liveness status
func (h *HealthHandler) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// Readyz returns readiness status. The service stays up without an email
// provider but reports the missing configuration here.
func (h *HealthHandler) Readyz(c *gin.Context) {
	checks := make(map[string]string)

	if h.provider != nil {
		checks["email_provider"] = h.provider.GetName()
	} else {
		checks["email_provider"] = "not configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": checks,
	})
}
