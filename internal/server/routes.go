package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nirmaan-tech/procure-api/internal/cache"
	v1 "github.com/nirmaan-tech/procure-api/internal/server/v1"
	"github.com/nirmaan-tech/procure-api/internal/store"
)

func (s *Server) registerRoutes(repo store.Repository, c *cache.Facade) {
	s.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	vendors := v1.NewVendorHandler(repo, c)
	dmrs := v1.NewDMRHandler(repo, c)
	imprests := v1.NewImprestHandler(repo, c)
	orders := v1.NewOrderHandler(repo, c)
	geo := v1.NewGeoHandler(repo, c)
	dashboard := v1.NewDashboardHandler(repo, c)

	api := s.engine.Group("/api/v1")
	{
		api.GET("/vendors", vendors.List)
		api.GET("/vendors/count", vendors.Count)
		api.GET("/vendors/:id", vendors.Get)
		api.POST("/vendors", vendors.Create)
		api.PUT("/vendors/:id", vendors.Update)
		api.DELETE("/vendors/:id", vendors.Delete)

		api.GET("/dmr", dmrs.List)
		api.GET("/dmr/count", dmrs.Count)
		api.GET("/dmr/:id", dmrs.Get)
		api.POST("/dmr", dmrs.Create)
		api.PUT("/dmr/:id", dmrs.Update)

		api.GET("/imprest-dmr", imprests.List)
		api.GET("/imprest-dmr/count", imprests.Count)
		api.GET("/imprest-dmr/:id", imprests.Get)
		api.POST("/imprest-dmr", imprests.Create)

		api.GET("/orders", orders.List)
		api.GET("/orders/count", orders.Count)
		api.GET("/orders/:id", orders.Get)
		api.POST("/orders", orders.Create)
		api.PUT("/orders/:id/status", orders.UpdateStatus)

		api.GET("/geo/states", geo.States)
		api.GET("/geo/states/:state/cities", geo.Cities)

		api.GET("/dashboard/counts", dashboard.Counts)
	}
}
