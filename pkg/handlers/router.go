package handlers

import (
	"fmt"
	"net/http"

	"fleet_registry/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, log *zap.Logger, cfg *config.Config) *gin.Engine {
	h := New(db, log)

	server := gin.New()
	server.Use(gin.Recovery(), RequestID(), Logger(log), Metrics())

	server.GET("/manage/health", healthCheck(db, cfg.Port))
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := server.Group("/", RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	routes(api, "brands", h.brandsIndex, h.brandsFilter, h.brandsAdd, h.brandsEdit, h.brandsDelete)
	routes(api, "cars", h.carsIndex, h.carsFilter, h.carsAdd, h.carsEdit, h.carsDelete)
	routes(api, "owners", h.ownersIndex, h.ownersFilter, h.ownersAdd, h.ownersEdit, h.ownersDelete)
	routes(api, "accidents", h.accidentsIndex, h.accidentsFilter, h.accidentsAdd, h.accidentsEdit, h.accidentsDelete)

	return server
}

func routes(r *gin.RouterGroup, entity string, index, filter, add, edit, del gin.HandlerFunc) {
	g := r.Group("/" + entity)
	g.GET("", index)
	g.GET("/filter", filter)
	g.POST("/add", add)
	g.POST("/edit", edit)
	g.POST("/delete", del)
}

func healthCheck(db *gorm.DB, port string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "DOWN",
				"details": "Database connection failed",
				"error":   err.Error(),
			})
			return
		}
		if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "DOWN",
				"details": "Database ping failed",
				"error":   err.Error(),
			})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"details": fmt.Sprintf("Host localhost:%s is active", port),
		})
	}
}
