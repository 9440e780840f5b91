package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/service"
)

type PushListHandler struct {
	service *service.PushListService
}

func NewPushListHandler(service *service.PushListService) *PushListHandler {
	return &PushListHandler{service: service}
}

// parseMonth reads the month param as YYYY-MM, defaulting to the current
// calendar month.
func parseMonth(c *gin.Context) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("month"))
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}

	month, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, false
	}
	return month, true
}

func parseBrandIDs(c *gin.Context) []int64 {
	value := strings.TrimSpace(c.Query("brand_ids"))
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]int64, 0, len(parts))
	for _, part := range parts {
		if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
			result = append(result, id)
		}
	}
	return result
}

func (h *PushListHandler) parseFilter(c *gin.Context) domain.PushListFilter {
	filter := domain.PushListFilter{
		Page: 1,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}

	if size, err := strconv.Atoi(c.Query("page_size")); err == nil && size > 0 {
		filter.PageSize = size
	}

	if topN, err := strconv.Atoi(c.Query("top_n")); err == nil && topN > 0 {
		filter.TopN = topN
	}

	filter.BrandIDs = parseBrandIDs(c)

	if bucket := strings.TrimSpace(c.Query("age_bucket")); bucket != "" {
		filter.AgeBucket = bucket
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = search
	}

	filter.SlowMoversOnly = c.Query("slow_movers_only") == "true"
	filter.OverstockOnly = c.Query("overstock_only") == "true"

	if sortField := strings.TrimSpace(c.Query("sort_field")); sortField != "" {
		filter.SortField = strings.ToLower(sortField)
	}

	sortDir := strings.ToLower(strings.TrimSpace(c.Query("sort_direction")))
	if sortDir == "asc" || sortDir == "desc" {
		filter.SortDir = sortDir
	}

	return filter
}

func (h *PushListHandler) GetPushList(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return
	}

	filter := h.parseFilter(c)
	result, err := h.service.Query(c.Request.Context(), month, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch push list", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PushListHandler) GetDashboard(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), month, parseBrandIDs(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *PushListHandler) GetBrands(c *gin.Context) {
	brands, err := h.service.GetBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch brands", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *PushListHandler) GetAvailableMonths(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if limit <= 0 {
		limit = 12
	}

	months, err := h.service.GetAvailableMonths(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch available months", "details": err.Error()})
		return
	}

	formatted := make([]string, 0, len(months))
	for _, m := range months {
		formatted = append(formatted, m.Format("2006-01"))
	}

	c.JSON(http.StatusOK, gin.H{"months": formatted})
}
