package routers

import (
	"time"

	"github.com/campuslog/page-share-service/internal/app"
	"github.com/campuslog/page-share-service/internal/middleware"
	"github.com/campuslog/page-share-service/internal/routers/api_router"
	"github.com/campuslog/page-share-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		pageHandler := api_router.NewPageHandler(appContainer)
		versionHandler := api_router.NewPageVersionHandler(appContainer)
		shareHandler := api_router.NewShareHandler(appContainer)
		groupHandler := api_router.NewGroupHandler(appContainer)
		inviteHandler := api_router.NewInviteHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		// 分享访问入口，匿名请求由业务侧静默拒绝
		api.GET("/page/:id/show", middleware.UserAuthTokenOptional(cfg.Security.AuthTokenKey), pageHandler.Show)

		api.Use(middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))

		api.GET("/user", userHandler.Info)

		api.POST("/page", pageHandler.Create)
		api.GET("/page/list", pageHandler.List)
		api.GET("/page/shared", pageHandler.SharedWithMe)
		api.GET("/page/:id", pageHandler.Get)
		api.PUT("/page/:id", pageHandler.Update)
		api.DELETE("/page/:id", pageHandler.Delete)

		api.GET("/page/:id/versions", versionHandler.List)
		api.POST("/page/:id/version/:vid/restore", versionHandler.Restore)
		api.DELETE("/page/:id/version/:vid", versionHandler.Discard)

		api.GET("/page/:id/recipients", shareHandler.ListRecipients)
		api.POST("/page/:id/recipients", shareHandler.AddRecipients)
		api.DELETE("/page/:id/recipient", shareHandler.RemoveRecipient)

		api.POST("/group", groupHandler.Create)
		api.GET("/group/list", groupHandler.List)
		api.GET("/group/:id/members", groupHandler.Members)
		api.POST("/group/:id/leave", groupHandler.Leave)
		api.POST("/group/:id/invite", inviteHandler.Invite)

		api.GET("/invite/list", inviteHandler.List)
		api.POST("/invite/:id/accept", inviteHandler.Accept)
		api.POST("/invite/:id/reject", inviteHandler.Reject)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
