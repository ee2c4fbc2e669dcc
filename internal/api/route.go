package api

import (
	"Darugi/internal/api/middleware"
	"Darugi/internal/pkg/logger"
	"Darugi/internal/pkg/security"
	"Darugi/internal/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterOptions 路由层需要的配置
type RouterOptions struct {
	SiteOrigin string
	Admin      security.Credentials
}

func SetupRouter(group *HandlersGroup, opts RouterOptions) *gin.Engine {
	util.RegisterValidators()

	r := gin.New()
	// 尾斜杠不重定向，/admin/ 等路径交给 NoRoute 处理并走认证
	r.RedirectTrailingSlash = false
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	logger.SetupGin(r)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 页面
	r.GET("/", group.PostHandler.Home)
	r.GET("/post/:slug", group.PostHandler.GetPost)
	r.GET("/policy", group.PostHandler.Policy)

	// SEO
	r.GET("/sitemap.xml", group.SeoHandler.Sitemap)
	r.GET("/robots.txt", group.SeoHandler.Robots)
	r.GET("/rss.xml", group.SeoHandler.Feed)

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.CORSMiddleware(opts.SiteOrigin))
	{
		apiGroup.POST("/like/:id", group.PostActionHandler.LikePost)
		apiGroup.POST("/share/:id", group.PostActionHandler.SharePost)
		apiGroup.POST("/comment", group.PostActionHandler.CreateComment)
	}

	// 需要 Basic 认证
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware(opts.Admin))
	{
		adminGroup.GET("", group.AdminHandler.Dashboard)
		adminGroup.GET("/new", group.AdminHandler.NewPost)
		adminGroup.GET("/edit/:id", group.AdminHandler.EditPost)
		adminGroup.POST("/save", group.AdminHandler.SavePost)
		adminGroup.POST("/delete/:id", group.AdminHandler.DeletePost)
	}

	// /admin 下未注册的路径先认证再返回 404
	r.NoRoute(middleware.AdminPathMiddleware(opts.Admin, "/admin"), group.PostHandler.NotFound)

	return r
}
