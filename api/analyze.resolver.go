package api

import (
	"context"
	"strings"

	"esgrank/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) analyze(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	profile, endProfile := domain.NewProfile()
	ctx := context.WithValue(c.Request.Context(), domain.ContextProfileKey, profile)

	analysis, err := h.AnalysisHandler.Analyze(ctx, ticker)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	endProfile()

	if c.Query("profile") == "true" {
		c.JSON(200, gin.H{
			"analysis": analysis,
			"profile":  profile,
		})
		return
	}

	c.JSON(200, analysis)
}
