package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) health(c *gin.Context) {
	records, err := h.EsgRecordRepository.Count()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"status":    "healthy",
		"records":   records,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
