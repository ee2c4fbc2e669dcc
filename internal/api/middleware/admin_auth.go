package middleware

import (
	"Darugi/internal/pkg/response"
	"Darugi/internal/pkg/security"
	"Darugi/internal/service"
	log "log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminUserKey 通过校验后写入 gin.Context 的用户名
const AdminUserKey = "admin_user"

// AdminAuthMiddleware HTTP Basic 认证，失败时在进入任何 handler 之前返回 401
func AdminAuthMiddleware(creds security.Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !creds.Verify(username, password) {
			if ok {
				log.WarnContext(c.Request.Context(), "admin auth failed", "username", username, "client_ip", c.ClientIP())
			}
			c.Header("WWW-Authenticate", `Basic realm="Admin"`)
			response.Text(c, http.StatusUnauthorized, service.UnauthorizedError.Error())
			c.Abort()
			return
		}

		c.Set(AdminUserKey, username)
		c.Next()
	}
}

// AdminPathMiddleware 对未注册的 prefix 下路径同样要求认证，用于 NoRoute
func AdminPathMiddleware(creds security.Credentials, prefix string) gin.HandlerFunc {
	gate := AdminAuthMiddleware(creds)
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			gate(c)
		}
	}
}
