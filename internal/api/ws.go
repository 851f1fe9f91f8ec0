package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cpduel/log/zlog"
	"cpduel/logic"
	"cpduel/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Ws 升级websocket连接，订阅对局推送
func Ws(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	if userID == 0 {
		response.NewResponse(c).Error(response.USER_NOT_LOGIN)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.CtxWarnf(ctx, "websocket升级失败:%v", err)
		return
	}
	logic.GetWsHub().Serve(userID, conn)
}
