package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) manipulation(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	assessment, err := h.ManipulationService.Assess(c.Request.Context(), ticker)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, assessment)
}
