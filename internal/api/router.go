package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "ecotrack/docs"
	"ecotrack/internal/api/handler"
	"ecotrack/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.GET("/api/v1/commerce/volume/series", h.CommerceVolume)
	r.GET("/api/v1/commerce/division", h.CommerceDivision)
	r.GET("/api/v1/commerce/ranking", h.CommerceRanking)
	r.GET("/api/v1/commerce/revenue-expense/series", h.CommerceRevenueExpense)
	r.GET("/api/v1/commerce/revenue-expense/grouped", h.CommerceRevenueExpenseGrouped)

	r.GET("/api/v1/industry/production/series", h.IndustryProduction)
	r.GET("/api/v1/industry/revenue/yearly", h.IndustryRevenue)

	r.GET("/api/v1/service/volume/series", h.ServiceVolume)
	r.GET("/api/v1/service/volume/ranking", h.ServiceVolumeRanking)
	r.GET("/api/v1/service/revenue/series", h.ServiceRevenue)
	r.GET("/api/v1/service/revenue/ranking", h.ServiceRevenueRanking)

	r.GET("/api/v1/runs", h.ListRuns)
	r.GET("/api/v1/health", h.Health)

	r.Mount("/swagger/", httpSwagger.WrapHandler)
}
