package app

import (
	"lab_platform_backend/docs"
	"lab_platform_backend/internal/config"
	"lab_platform_backend/internal/middleware"
	"lab_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	// 1. 认证路由(无需登录)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/confirm", c.auth.Confirm)
		auth.POST("/login", c.auth.Login)
		auth.POST("/refresh", c.auth.Refresh)
		auth.POST("/forgot-password", c.auth.ForgotPassword)
		auth.POST("/confirm-forgot-password", c.auth.ConfirmForgotPassword)
		auth.POST("/resend-verification", c.auth.ResendVerification)
	}

	// 2. 需要授权的路由
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// 实验目录与提交
		api.GET("/labs", c.lab.List)
		api.GET("/labs/:labId", c.lab.Get)
		api.HEAD("/labs/:labId", c.lab.Head)
		api.POST("/labs/:labId/submit", c.lab.Submit)

		// 分部提交
		api.POST("/part-submissions/presigned-url", c.partSubmission.Presign)
		api.POST("/part-submissions", c.partSubmission.Create)
		api.POST("/part-submissions/self-checkoff", c.partSubmission.SelfCheckoff)
		api.GET("/part-submissions", c.partSubmission.List)
		api.GET("/part-submissions/:submissionId", c.partSubmission.Get)

		// 整实验提交
		api.GET("/submissions", c.submission.List)
		api.GET("/submissions/:submissionId", c.submission.Get)

		// 教学人员接口
		staff := api.Group("")
		staff.Use(middleware.StaffOnly())
		{
			staff.PUT("/labs/:labId", c.lab.Update)
			staff.POST("/labs/:labId/lock", c.lab.Lock)
			staff.POST("/labs/:labId/unlock", c.lab.Unlock)

			staff.GET("/part-submissions/queue", c.partSubmission.Queue)
			staff.PUT("/part-submissions/:submissionId", c.partSubmission.Review)
			staff.PUT("/submissions/:submissionId", c.submission.Review)

			staff.GET("/students", c.student.List)
			staff.POST("/students", c.student.Create)
			staff.GET("/students/:name", c.student.Get)
			staff.PUT("/students/:name", c.student.Update)

			staff.GET("/progress", c.progress.List)
			staff.GET("/progress/:name", c.progress.Get)
			staff.PUT("/progress/:name", c.progress.Update)
		}
	}
}
