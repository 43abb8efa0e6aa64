package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tipjar/internal/handler"
	"tipjar/internal/service/session"
	"tipjar/pkg/monitor"
	"tipjar/pkg/validator"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(store *session.Store) *gin.Engine {
	// 0. 初始化监控指标与校验器
	monitor.Init()
	validator.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(monitor.PrometheusMiddleware())

	// 3. 注册基础路由
	r.GET("/health", handler.Health(store))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 页面路由
	withSession := handler.Session(store)
	page := r.Group("/", withSession)
	{
		page.GET("/", handler.Page.Index)
		page.POST("/connect", handler.Page.Connect)
		page.POST("/disconnect", handler.Page.Disconnect)
		page.POST("/donate", handler.Page.Donate)
		page.POST("/refresh", handler.Page.Refresh)
	}

	// 5. API 路由
	api := r.Group("/api/v1", withSession)
	{
		api.GET("/state", handler.TipJar.State)
		api.GET("/providers", handler.TipJar.Providers)

		wallet := api.Group("/wallet")
		wallet.POST("/connect", handler.TipJar.Connect)
		wallet.POST("/disconnect", handler.TipJar.Disconnect)

		tips := api.Group("/tips")
		tips.POST("/donate", handler.TipJar.Donate)
		tips.POST("/refresh", handler.TipJar.Refresh)
	}

	return r
}
