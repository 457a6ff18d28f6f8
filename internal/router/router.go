package router

import (
	"github.com/farmgate/internal/config"
	"github.com/farmgate/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// sessionMaxAge 会话有效期为 24 小时
const sessionMaxAge = 24 * 60 * 60

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件，Cookie 带签名并限定有效期
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("farmgate_session", store))

	// 上传文件静态服务
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公开接口
	api2 := r.Group("/api")
	{
		api2.GET("/news", api.PublicListNews)
		api2.GET("/news/:slug", api.PublicGetNews)
		api2.GET("/blogs", api.PublicListBlogs)
		api2.GET("/blogs/:slug", api.PublicGetBlog)
		api2.GET("/gallery", api.ListGalleryImages)
		api2.GET("/leaders", api.ListLeaders)

		api2.POST("/contact", api.SubmitContact)
		api2.POST("/newsletter", api.SubscribeNewsletter)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/api/login", api.Login)

		// 需要认证的后台路由
		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.POST("/logout", api.Logout)
			auth.POST("/credentials", api.UpdateCredentials)

			auth.GET("/news", api.ListNews)
			auth.GET("/news/:id", api.GetNews)
			auth.POST("/news", api.CreateNews)
			auth.PUT("/news/:id", api.UpdateNews)
			auth.DELETE("/news/:id", api.DeleteNews)

			auth.GET("/blogs", api.ListBlogs)
			auth.GET("/blogs/:id", api.GetBlog)
			auth.POST("/blogs", api.CreateBlog)
			auth.PUT("/blogs/:id", api.UpdateBlog)
			auth.DELETE("/blogs/:id", api.DeleteBlog)

			auth.GET("/gallery", api.ListGalleryImages)
			auth.POST("/gallery", api.CreateGalleryImage)
			auth.PUT("/gallery/:id", api.UpdateGalleryImage)
			auth.DELETE("/gallery/:id", api.DeleteGalleryImage)

			auth.GET("/leaders", api.ListLeaders)
			auth.GET("/leaders/:id", api.GetLeader)
			auth.POST("/leaders", api.CreateLeader)
			auth.PUT("/leaders/:id", api.UpdateLeader)
			auth.DELETE("/leaders/:id", api.DeleteLeader)

			auth.GET("/messages", api.ListMessages)
			auth.PUT("/messages/:id/read", api.MarkMessageRead)
			auth.DELETE("/messages/:id", api.DeleteMessage)

			auth.GET("/subscribers", api.ListSubscribers)
			auth.DELETE("/subscribers/:id", api.RemoveSubscriber)
			auth.GET("/newsletter/deliveries", api.ListDeliveries)

			auth.POST("/uploads", api.UploadImage)
		}
	}

	return r
}
