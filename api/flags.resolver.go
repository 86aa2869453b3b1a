package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) flags(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	flags, err := h.ControversyService.FlagControversies(c.Request.Context(), ticker)
	if err != nil {
		returnErrorJsonCode(err, c, 502)
		return
	}

	c.JSON(200, gin.H{
		"ticker": ticker,
		"flags":  flags,
		"count":  len(flags),
	})
}
