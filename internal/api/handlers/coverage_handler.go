package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/service"
)

type CoverageHandler struct {
	service *service.CoverageService
}

func NewCoverageHandler(service *service.CoverageService) *CoverageHandler {
	return &CoverageHandler{service: service}
}

func (h *CoverageHandler) GetAssessment(c *gin.Context) {
	brandID, err := strconv.ParseInt(c.Param("brand_id"), 10, 64)
	if err != nil || brandID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand_id"})
		return
	}

	month, ok := parseMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return
	}

	assessment, err := h.service.Assess(c.Request.Context(), brandID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assess coverage", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assessment)
}

func (h *CoverageHandler) GetPortfolio(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return
	}

	assessments, err := h.service.Portfolio(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assess portfolio", "details": err.Error()})
		return
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseCoverageStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown coverage status"})
			return
		}
		filtered := assessments[:0]
		for _, a := range assessments {
			if a.Status == status {
				filtered = append(filtered, a)
			}
		}
		assessments = filtered
	}

	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}
