package api

import (
	"github.com/gin-gonic/gin"

	"cpduel/log/zlog"
	"cpduel/logic"
	"cpduel/response"
	"cpduel/types"
)

// Engine 引擎入口，action区分matchmake/poll
func Engine(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, role := currentUser(c)
	req, err := types.BindReq[types.EngineReq](c)
	if err != nil {
		return
	}
	resp, err := logic.DefaultEngine().Execute(ctx, userID, role, req.Action)
	response.Response(c, resp, err)
}
