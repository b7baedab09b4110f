package Controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/controllers"
	"github.com/mi-restaurante/backend/repository"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	ok := controllers.NewHealthController(repository.GormPinger{DB: setupTestDB(t)}, "sqlite")
	down := controllers.NewHealthController(pingerFunc(func(context.Context) error {
		return errors.New("connection refused")
	}), "mongo")

	router := gin.New()
	router.GET("/ping", ok.Ping)
	router.GET("/health", ok.Health)
	router.GET("/health-down", down.Health)

	w := doJSON(router, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decodeObject(t, w)["message"])

	w = doJSON(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"status": "ok", "db": "sqlite"}, decodeObject(t, w))

	w = doJSON(router, http.MethodGet, "/health-down", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decodeObject(t, w)["status"])
}
