package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ravindra-p/stockpulse/internal/service"
)

type BalanceHandler struct {
	service *service.BalanceService
}

func NewBalanceHandler(service *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{service: service}
}

func (h *BalanceHandler) GetReport(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return
	}

	report, err := h.service.Report(c.Request.Context(), month, parseBrandIDs(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch balance report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
