// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ravindra-p/stockpulse/internal/api/handlers"
	"github.com/ravindra-p/stockpulse/internal/api/middleware"
	"github.com/ravindra-p/stockpulse/internal/service"
)

type Services struct {
	PushListService *service.PushListService
	BalanceService  *service.BalanceService
	CoverageService *service.CoverageService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.PushListService != nil {
			pushListHandler := handlers.NewPushListHandler(services.PushListService)
			pushListGroup := apiGroup.Group("/push_list")
			{
				pushListGroup.GET("", pushListHandler.GetPushList)
				pushListGroup.GET("/dashboard", pushListHandler.GetDashboard)
			}
			apiGroup.GET("/brands", pushListHandler.GetBrands)
			apiGroup.GET("/months", pushListHandler.GetAvailableMonths)
		}

		if services.BalanceService != nil {
			balanceHandler := handlers.NewBalanceHandler(services.BalanceService)
			apiGroup.GET("/balance", balanceHandler.GetReport)
		}

		if services.CoverageService != nil {
			coverageHandler := handlers.NewCoverageHandler(services.CoverageService)
			coverageGroup := apiGroup.Group("/coverage")
			{
				coverageGroup.GET("/portfolio", coverageHandler.GetPortfolio)
				coverageGroup.GET("/brands/:brand_id", coverageHandler.GetAssessment)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
