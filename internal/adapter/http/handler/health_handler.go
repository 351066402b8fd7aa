package handler

import (
	"net/http"
	"time"

	"shadowpay/internal/adapter/http/dto"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health, pinging every dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}

// AppInfo describes the deployment shown on the about page.
type AppInfo struct {
	Name        string
	Network     string
	ExplorerURL string
}

// About handles GET /api/v1/about.
func About(info AppInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.OK(c, dto.NewAboutResponse(info.Name, info.Network, info.ExplorerURL, time.Now()))
	}
}
