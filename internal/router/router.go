package router

import (
	"github.com/gin-gonic/gin"
	"github.com/user/blog/internal/handler"
	"github.com/user/blog/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler, authz middleware.Authorizer) {
	// 健康检查
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	// ==================== 公开接口 ====================
	api := r.Group("/api")
	{
		api.GET("/posts", h.PublicPosts)
		api.GET("/posts/:id", h.PublicPost)
	}

	// ==================== 管理接口（全部需要登录）====================
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(authz))
	{
		admin.GET("/categories", h.AdminCategories)
		admin.POST("/categories", h.AdminCategoryCreate)
		admin.GET("/categories/:id", h.AdminCategory)
		admin.PUT("/categories/:id", h.AdminCategoryUpdate)
		admin.DELETE("/categories/:id", h.AdminCategoryDelete)

		admin.GET("/posts", h.AdminPosts)
		admin.POST("/posts", h.AdminPostCreate)
		admin.GET("/posts/:id", h.AdminPost)
		admin.PUT("/posts/:id", h.AdminPostUpdate)
		admin.DELETE("/posts/:id", h.AdminPostDelete)

		admin.POST("/uploads", h.AdminUpload)
	}
}
