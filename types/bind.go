package types

import (
	"github.com/gin-gonic/gin"

	"cpduel/response"
)

// BindReq 统一参数绑定，失败时直接写响应，调用方只需return
func BindReq[T any](c *gin.Context) (T, error) {
	var req T
	if err := c.ShouldBind(&req); err != nil {
		response.NewResponse(c).Error(response.PARAM_NOT_VALID)
		return req, err
	}
	return req, nil
}
