package api

import (
	"github.com/gin-gonic/gin"
)

func (h ApiHandler) search(c *gin.Context) {
	query := c.Param("query")

	results, err := h.SearchService.Search(c.Request.Context(), query)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}
