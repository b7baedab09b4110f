package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/utils"
)

type HealthController struct {
	DB     repository.Pinger
	Driver string
}

func NewHealthController(db repository.Pinger, driver string) *HealthController {
	return &HealthController{DB: db, Driver: driver}
}

func (hc *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health reports whether the storage backend answers.
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hc.DB.Ping(ctx); err != nil {
		utils.ErrorLogger.Errorf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "db": hc.Driver})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": hc.Driver})
}
