package controllers

import (
	"net/http"

	"github.com/RehanAli357/baby-food/services"
	"github.com/gin-gonic/gin"
)

// Health reports the loaded record count and the number of live viewers.
func Health(catalog *services.Catalog, hub *services.RealtimeHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"records": catalog.Len(),
			"viewers": hub.Count(),
		})
	}
}
