package api

import (
	"github.com/gin-gonic/gin"

	"cpduel/log/zlog"
	"cpduel/logic"
	"cpduel/response"
	"cpduel/types"
)

func QueueJoin(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	req, err := types.BindReq[types.QueueJoinReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewQueueLogic().Join(ctx, userID, req)
	response.Response(c, resp, err)
}

func QueueLeave(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	resp, err := logic.NewQueueLogic().Leave(ctx, userID)
	response.Response(c, resp, err)
}

func QueueStatus(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	resp, err := logic.NewQueueLogic().Status(ctx, userID)
	response.Response(c, resp, err)
}
