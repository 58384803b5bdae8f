package router

import (
	"net/http"
	"time"

	"expensetracker/api"
	"expensetracker/config"
	"expensetracker/middleware"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, store *state.Store) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// 健康检查，degraded 表示数据库不可用、正以内存模式运行
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"degraded": store.Degraded(),
		})
	})

	userHandler := api.NewUserHandler(store)
	transactionHandler := api.NewTransactionHandler(store)
	dashboardHandler := api.NewDashboardHandler(store, cfg)
	goalHandler := api.NewGoalHandler(store)
	recommendHandler := api.NewRecommendHandler(store)
	rewardHandler := api.NewRewardHandler(store)
	exportHandler := api.NewExportHandler(store)

	v1 := r.Group("/api/v1")
	{
		// 用户档案
		v1.POST("/setup", userHandler.Setup)
		v1.GET("/profile", userHandler.Profile)
		v1.POST("/logout", userHandler.Logout)

		// 交易记录（写操作限流）
		write := v1.Group("")
		write.Use(middleware.WriteRateLimit(120, time.Minute))
		{
			write.POST("/transactions", transactionHandler.Create)
			write.DELETE("/transactions/:id", transactionHandler.Delete)
		}
		v1.GET("/transactions", transactionHandler.List)
		v1.GET("/categories", transactionHandler.Categories)

		// 仪表盘
		v1.GET("/dashboard", dashboardHandler.Dashboard)

		// 月度目标
		v1.GET("/goals", goalHandler.List)
		v1.GET("/goals/current", goalHandler.Current)
		v1.PUT("/goals/:id", goalHandler.Update)

		// 预算建议
		v1.GET("/recommendations", recommendHandler.Recommendations)

		// 奖励
		v1.GET("/rewards", rewardHandler.Ladder)
		v1.POST("/rewards/points", rewardHandler.AddPoints)
		v1.POST("/rewards/:id/unlock", rewardHandler.Unlock)

		// 导出
		v1.GET("/export/csv", exportHandler.ExportCSV)
		v1.GET("/export/json", exportHandler.ExportJSON)
		v1.GET("/export/excel", exportHandler.ExportExcel)
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
