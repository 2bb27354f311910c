package middleware

import (
	"github.com/campuslog/page-share-service/pkg/app"
	"github.com/campuslog/page-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// extractToken 从请求头或查询参数中提取 Token
func extractToken(c *gin.Context) string {
	var token string

	if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s, exist := c.GetQuery("Authorization"); exist {
		token = s
	} else if s := c.GetHeader("authorization"); len(s) != 0 {
		token = s
	} else if s := c.GetHeader("Authorization"); len(s) != 0 {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	} else if s, exist := c.GetQuery("Token"); exist {
		token = s
	} else if s = c.GetHeader("token"); len(s) != 0 {
		token = s
	} else if s = c.GetHeader("Token"); len(s) != 0 {
		token = s
	}

	return token
}

// UserAuthTokenWithConfig 用户 Token 认证中间件（使用注入的密钥）
func UserAuthTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := extractToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		if user, err := app.ParseTokenWithKey(token, secretKey); err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		} else {
			c.Set("user_token", user)
		}

		c.Next()
	}
}

// UserAuthTokenOptional 可选的用户 Token 认证中间件
// 携带有效 Token 时注入用户信息，匿名或无效 Token 时放行
// 匿名语义由各业务入口自行处理
func UserAuthTokenOptional(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if user, err := app.ParseTokenWithKey(token, secretKey); err == nil {
				c.Set("user_token", user)
			}
		}
		c.Next()
	}
}

// UserAuthToken 用户 Token 认证中间件（无密钥，始终失败）
// Deprecated: 推荐使用 UserAuthTokenWithConfig
func UserAuthToken() gin.HandlerFunc {
	return UserAuthTokenWithConfig("")
}
