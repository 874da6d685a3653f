package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthAPI reports process liveness and database reachability.
type HealthAPI struct {
	db *gorm.DB
}

// NewHealthAPI creates a HealthAPI. db may be nil when running on the
// in-memory adapters.
func NewHealthAPI(db *gorm.DB) HealthAPI {
	return HealthAPI{db: db}
}

// Get /health
func (api *HealthAPI) Health(c *gin.Context) {
	database := "in-memory"
	if api.db != nil {
		database = "connected"
		if sqlDB, err := api.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			database = "disconnected"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}
