package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) alternatives(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	count := 0
	if countParam := c.Query("count"); countParam != "" {
		parsed, err := strconv.Atoi(countParam)
		if err != nil || parsed <= 0 {
			returnErrorJsonCode(fmt.Errorf("count must be a positive integer, got %q", countParam), c, 400)
			return
		}
		count = parsed
	}

	suggestions, err := h.AlternativesService.Alternatives(c.Request.Context(), ticker, count)
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return
	}

	c.JSON(200, gin.H{
		"ticker":       ticker,
		"alternatives": suggestions,
		"count":        len(suggestions),
	})
}
