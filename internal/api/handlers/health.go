package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the public liveness and root endpoints
type HealthHandler struct {
	projectName string
	version     string
}

func NewHealthHandler(projectName, version string) *HealthHandler {
	return &HealthHandler{projectName: projectName, version: version}
}

// Up godoc
// @Summary Healthcheck endpoint
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /up [get]
func (h *HealthHandler) Up(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Health godoc
// @Summary Health check with version
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": h.version})
}

// Root godoc
// @Summary Root endpoint
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + h.projectName,
		"version": h.version,
		"docs":    "/docs/index.html",
	})
}
