package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cpduel/global"
	"cpduel/response"
	"cpduel/utils/jwtUtils"
)

// Authentication 鉴权中间件，minRole按角色等级比较
func Authentication(minRole int) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.NewResponse(c).Error(response.TOKEN_IS_BLANK)
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.NewResponse(c).Error(response.TOKEN_FORMAT_ERROR)
			c.Abort()
			return
		}
		claims, err := jwtUtils.ParseToken(parts[1])
		if err != nil {
			response.NewResponse(c).Error(response.TOKEN_IS_EXPIRED)
			c.Abort()
			return
		}
		if claims.Role < minRole {
			response.NewResponse(c).Error(response.PERMISSION_DENIED)
			c.Abort()
			return
		}
		c.Set(global.TOKEN_USER_ID, claims.UserID)
		c.Set(global.TOKEN_ROLE, claims.Role)
		c.Next()
	}
}
