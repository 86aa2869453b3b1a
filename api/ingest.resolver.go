package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type IngestRequest struct {
	Tickers []string `json:"tickers"`
}

func (h ApiHandler) ingest(c *gin.Context) {
	var requestBody IngestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	if len(requestBody.Tickers) == 0 {
		returnErrorJsonCode(fmt.Errorf("tickers must be non-empty"), c, 400)
		return
	}

	report, err := h.IngestHandler.Ingest(c.Request.Context(), requestBody.Tickers)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, report)
}
