package api

import (
	"fmt"
	"strconv"
	"strings"

	"esgrank/internal/service"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) predict(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	horizonDays := service.DefaultPredictionHorizonDays
	if daysParam := c.Query("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed <= 0 {
			returnErrorJsonCode(fmt.Errorf("days must be a positive integer, got %q", daysParam), c, 400)
			return
		}
		horizonDays = parsed
	}

	prediction, err := h.PredictionService.Predict(c.Request.Context(), ticker, horizonDays)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, prediction)
}
