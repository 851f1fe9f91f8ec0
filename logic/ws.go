package logic

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cpduel/log/zlog"
	"cpduel/response"
	"cpduel/types"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

const (
	WsTypeJoinMatch  = "join_match"
	WsTypeLeaveMatch = "leave_match"
	WsTypePing       = "ping"
	WsTypePong       = "pong"
)

// wsClient 单个用户连接，写操作全走send通道避免并发写socket
type wsClient struct {
	userID int64
	conn   *websocket.Conn
	send   chan types.WsResponse
	once   sync.Once
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// WsHub 连接中心：用户 -> 连接，对局 -> 订阅用户集合
type WsHub struct {
	mu      sync.RWMutex
	clients map[int64]*wsClient
	rooms   map[int64]map[int64]struct{}
}

var wsHubOnce sync.Once
var wsHub *WsHub

func GetWsHub() *WsHub {
	wsHubOnce.Do(func() {
		wsHub = &WsHub{
			clients: make(map[int64]*wsClient),
			rooms:   make(map[int64]map[int64]struct{}),
		}
	})
	return wsHub
}

// Serve 接管一条已升级的websocket连接，阻塞到连接断开
func (h *WsHub) Serve(userID int64, conn *websocket.Conn) {
	client := &wsClient{
		userID: userID,
		conn:   conn,
		send:   make(chan types.WsResponse, 16),
	}
	h.register(client)
	defer h.unregister(client)

	go h.writeLoop(client)
	h.readLoop(client)
}

func (h *WsHub) register(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[client.userID]; ok {
		// 同一用户新连接顶掉旧连接
		old.close()
	}
	h.clients[client.userID] = client
}

func (h *WsHub) unregister(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[client.userID]; ok && current == client {
		delete(h.clients, client.userID)
		for matchID, members := range h.rooms {
			delete(members, client.userID)
			if len(members) == 0 {
				delete(h.rooms, matchID)
			}
		}
	}
	client.close()
	_ = client.conn.Close()
}

func (h *WsHub) readLoop(client *wsClient) {
	client.conn.SetReadLimit(4096)
	_ = client.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zlog.Warnf("ws连接异常断开 user=%d:%v", client.userID, err)
			}
			return
		}
		var req types.WsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			h.sendTo(client, types.WsResponse{
				Type:    req.Type,
				Code:    response.PARAM_NOT_VALID.Code,
				Message: response.PARAM_NOT_VALID.Msg,
			})
			continue
		}
		h.dispatch(client, req)
	}
}

func (h *WsHub) writeLoop(client *wsClient) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WsHub) dispatch(client *wsClient, req types.WsRequest) {
	switch req.Type {
	case WsTypeJoinMatch:
		matchID, err := parseWsMatchID(req.Data)
		if err != nil {
			h.sendTo(client, types.WsResponse{Type: req.Type, Code: response.PARAM_NOT_VALID.Code, Message: response.PARAM_NOT_VALID.Msg})
			return
		}
		h.JoinMatch(matchID, client.userID)
		h.sendTo(client, types.WsResponse{Type: req.Type, Code: response.SUCCESS.Code, Message: response.SUCCESS.Msg})
	case WsTypeLeaveMatch:
		matchID, err := parseWsMatchID(req.Data)
		if err != nil {
			h.sendTo(client, types.WsResponse{Type: req.Type, Code: response.PARAM_NOT_VALID.Code, Message: response.PARAM_NOT_VALID.Msg})
			return
		}
		h.LeaveMatch(matchID, client.userID)
		h.sendTo(client, types.WsResponse{Type: req.Type, Code: response.SUCCESS.Code, Message: response.SUCCESS.Msg})
	case WsTypePing:
		h.sendTo(client, types.WsResponse{Type: WsTypePong, Code: response.SUCCESS.Code, Message: response.SUCCESS.Msg})
	default:
		h.sendTo(client, types.WsResponse{Type: req.Type, Code: response.ACTION_NOT_EXIST.Code, Message: response.ACTION_NOT_EXIST.Msg})
	}
}

func parseWsMatchID(raw json.RawMessage) (int64, error) {
	var req types.MatchWsJoinReq
	if err := json.Unmarshal(raw, &req); err != nil {
		return 0, err
	}
	if req.MatchID == "" {
		return 0, errors.New("match id blank")
	}
	return strconv.ParseInt(req.MatchID, 10, 64)
}

func (h *WsHub) JoinMatch(matchID, userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[matchID] == nil {
		h.rooms[matchID] = make(map[int64]struct{})
	}
	h.rooms[matchID][userID] = struct{}{}
}

func (h *WsHub) LeaveMatch(matchID, userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[matchID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(h.rooms, matchID)
		}
	}
}

func (h *WsHub) SendToUser(userID int64, msg types.WsResponse) {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	h.sendTo(client, msg)
}

// SendToMatch 推送给订阅了该对局的所有在线用户，慢消费者直接丢弃
func (h *WsHub) SendToMatch(matchID int64, msg types.WsResponse) {
	h.mu.RLock()
	members := make([]*wsClient, 0)
	for userID := range h.rooms[matchID] {
		if client, ok := h.clients[userID]; ok {
			members = append(members, client)
		}
	}
	h.mu.RUnlock()
	for _, client := range members {
		h.sendTo(client, msg)
	}
}

func (h *WsHub) sendTo(client *wsClient, msg types.WsResponse) {
	defer func() {
		// send通道可能已被新连接顶掉时关闭
		_ = recover()
	}()
	select {
	case client.send <- msg:
	default:
	}
}
