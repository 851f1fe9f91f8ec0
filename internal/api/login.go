package api

import (
	"github.com/gin-gonic/gin"

	"cpduel/log/zlog"
	"cpduel/logic"
	"cpduel/response"
	"cpduel/types"
)

func SendCode(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.SendCodeReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewLoginLogic().SendCode(ctx, req)
	response.Response(c, resp, err)
}

func Register(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.RegisterReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewLoginLogic().Register(ctx, req)
	response.Response(c, resp, err)
}

func Login(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.LoginReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewLoginLogic().Login(ctx, req)
	response.Response(c, resp, err)
}
