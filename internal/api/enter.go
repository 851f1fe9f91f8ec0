package api

import (
	"github.com/gin-gonic/gin"

	"cpduel/global"
)

// currentUser 取token中间件写入的用户身份
func currentUser(c *gin.Context) (int64, int) {
	var userID int64
	var role int
	if v, ok := c.Get(global.TOKEN_USER_ID); ok {
		userID, _ = v.(int64)
	}
	if v, ok := c.Get(global.TOKEN_ROLE); ok {
		role, _ = v.(int)
	}
	return userID, role
}
