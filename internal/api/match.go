package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"cpduel/log/zlog"
	"cpduel/logic"
	"cpduel/response"
	"cpduel/types"
)

func MatchCreate(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	req, err := types.BindReq[types.MatchCreateReq](c)
	if err != nil {
		return
	}
	resp, err := logic.DefaultLobby().Create(ctx, userID, req)
	response.Response(c, resp, err)
}

func MatchJoin(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	req, err := types.BindReq[types.MatchJoinReq](c)
	if err != nil {
		return
	}
	resp, err := logic.DefaultLobby().Join(ctx, userID, req)
	response.Response(c, resp, err)
}

func MatchLeave(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	req, err := types.BindReq[types.MatchLeaveReq](c)
	if err != nil {
		return
	}
	resp, err := logic.DefaultLobby().Leave(ctx, userID, req)
	response.Response(c, resp, err)
}

func MatchStart(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	req, err := types.BindReq[types.MatchStartReq](c)
	if err != nil {
		return
	}
	resp, err := logic.DefaultLobby().Start(ctx, userID, req)
	response.Response(c, resp, err)
}

func MatchInfo(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.MatchInfoReq](c)
	if err != nil {
		return
	}
	resp, err := logic.DefaultLobby().Info(ctx, req)
	response.Response(c, resp, err)
}

func MatchList(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.MatchListReq](c)
	if err != nil {
		return
	}
	resp, err := logic.DefaultLobby().List(ctx, req)
	response.Response(c, resp, err)
}

func DrawOffer(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	req, err := types.BindReq[types.DrawOfferReq](c)
	if err != nil {
		return
	}
	matchID, err := parseMatchID(req.MatchID)
	if err != nil {
		response.Response(c, nil, err)
		return
	}
	resp, err := logic.GetMatchManager().DrawOffer(ctx, userID, matchID)
	response.Response(c, resp, err)
}

func Resign(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID, _ := currentUser(c)
	req, err := types.BindReq[types.ResignReq](c)
	if err != nil {
		return
	}
	matchID, err := parseMatchID(req.MatchID)
	if err != nil {
		response.Response(c, nil, err)
		return
	}
	resp, err := logic.GetMatchManager().Resign(ctx, userID, matchID)
	response.Response(c, resp, err)
}

func parseMatchID(raw string) (int64, error) {
	if raw == "" {
		return 0, response.ErrResp(errors.New("match id blank"), response.PARAM_NOT_COMPLETE)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, response.ErrResp(err, response.PARAM_NOT_VALID)
	}
	return id, nil
}
