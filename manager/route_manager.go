package manager

import (
	"github.com/gin-gonic/gin"

	"cpduel/log/zlog"
	"cpduel/response"
)

// RequestGlobalMiddleware 全局中间件：写入trace context + panic兜底
func RequestGlobalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := zlog.NewCtx()
		c.Set(string(zlog.TraceIDKey), ctx)
		defer func() {
			if r := recover(); r != nil {
				zlog.CtxErrorf(ctx, "请求panic path=%s:%v", c.FullPath(), r)
				response.NewResponse(c).Error(response.INTERNAL_ERROR)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RouteManager 分组路由注册器
type RouteManager struct {
	engine *gin.Engine
	base   *gin.RouterGroup
}

func NewRouteManager(engine *gin.Engine) *RouteManager {
	return &RouteManager{
		engine: engine,
		base:   engine.Group("/api/v1"),
	}
}

func (m *RouteManager) RegisterLoginRoutes(register func(rg *gin.RouterGroup)) {
	register(m.base.Group("/login"))
}

func (m *RouteManager) RegisterUserRoutes(register func(rg *gin.RouterGroup)) {
	register(m.base.Group("/user"))
}

func (m *RouteManager) RegisterQueueRoutes(register func(rg *gin.RouterGroup)) {
	register(m.base.Group("/queue"))
}

func (m *RouteManager) RegisterMatchRoutes(register func(rg *gin.RouterGroup)) {
	register(m.base.Group("/match"))
}

func (m *RouteManager) RegisterEngineRoutes(register func(rg *gin.RouterGroup)) {
	register(m.base.Group("/engine"))
}

func (m *RouteManager) RegisterWsRoutes(register func(rg *gin.RouterGroup)) {
	register(m.base.Group("/ws"))
}
