package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/backend/internal/model"
)

const apiVersion = "1.0.0"

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func Health(appEnv string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, model.HealthResponse{
			Status:      "healthy",
			Environment: appEnv,
			Version:     apiVersion,
		})
	}
}

// Root godoc
// @Summary Service banner
// @Tags root
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Message: "Welcome to Taskhive API",
		Version: apiVersion,
		Health:  "/health",
		OpenAPI: "/openapi.json",
	})
}
