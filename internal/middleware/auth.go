package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/user/blog/internal/service"
	"github.com/user/blog/internal/utils"
)

// Authorizer 校验 Authorization 请求头
type Authorizer interface {
	Authorize(ctx context.Context, header string) service.Decision
}

// RequireAuth 必须登录中间件，未通过时返回 401 并中止请求
func RequireAuth(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := authz.Authorize(c.Request.Context(), c.GetHeader("Authorization"))
		if !decision.Authorized {
			utils.Unauthorized(c, decision.Reason)
			return
		}

		// 将用户信息存入上下文
		if decision.User != nil {
			c.Set("user_id", decision.User.ID)
			c.Set("email", decision.User.Email)
		}
		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID（未登录返回空字符串）
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
