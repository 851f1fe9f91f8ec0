package routerg

import (
	"github.com/gin-gonic/gin"

	"cpduel/global"
	"cpduel/internal/api"
	"cpduel/manager"
	"cpduel/middleware"
)

// InitWebRouter 注册全部HTTP路由
func InitWebRouter(engine *gin.Engine) {
	engine.Use(manager.RequestGlobalMiddleware())

	rm := manager.NewRouteManager(engine)

	rm.RegisterLoginRoutes(func(rg *gin.RouterGroup) {
		rg.Use(middleware.RateLimit(5, 10))
		rg.POST("/send_code", api.SendCode)
		rg.POST("/register", api.Register)
		rg.POST("/login", api.Login)
	})

	rm.RegisterUserRoutes(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Authentication(global.ROLE_USER))
		rg.GET("/profile", api.Profile)
		rg.POST("/profile", middleware.RateLimit(5, 10), api.UpdateProfile)
	})

	rm.RegisterQueueRoutes(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Authentication(global.ROLE_USER), middleware.RateLimit(10, 20))
		rg.POST("/join", api.QueueJoin)
		rg.POST("/leave", api.QueueLeave)
		rg.GET("/status", api.QueueStatus)
	})

	rm.RegisterMatchRoutes(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Authentication(global.ROLE_USER), middleware.RateLimit(10, 20))
		rg.POST("/create", api.MatchCreate)
		rg.POST("/join", api.MatchJoin)
		rg.POST("/leave", api.MatchLeave)
		rg.POST("/start", api.MatchStart)
		rg.GET("/info", api.MatchInfo)
		rg.GET("/list", api.MatchList)
		rg.POST("/draw", api.DrawOffer)
		rg.POST("/resign", api.Resign)
	})

	rm.RegisterEngineRoutes(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Authentication(global.ROLE_USER))
		rg.POST("", api.Engine)
	})

	rm.RegisterWsRoutes(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Authentication(global.ROLE_USER))
		rg.GET("", api.Ws)
	})
}
