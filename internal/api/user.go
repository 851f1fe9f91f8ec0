package api

import (
	"github.com/gin-gonic/gin"

	"cpduel/log/zlog"
	"cpduel/logic"
	"cpduel/response"
	"cpduel/types"
)

func Profile(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	resp, err := logic.NewProfileLogic().Get(ctx, userID)
	response.Response(c, resp, err)
}

func UpdateProfile(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	req, err := types.BindReq[types.UpdateProfileReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewProfileLogic().Update(ctx, userID, req)
	response.Response(c, resp, err)
}
