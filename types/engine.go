package types

const (
	EngineActionMatchmake = "matchmake"
	EngineActionPoll      = "poll"
)

type EngineReq struct {
	Action string `json:"action" form:"action"`
}

type EngineMatchmakeResp struct {
	Match   *MatchInfo `json:"match,omitempty"`
	Message string     `json:"message,omitempty"`
}

type EnginePollResp struct {
	Results []PollResult `json:"results,omitempty"`
	Message string       `json:"message,omitempty"`
}

// PollResult 单个对局在一次poll里产生的事件
type PollResult struct {
	MatchID      int64  `json:"match_id,string"`
	Event        string `json:"event"` // solve | finished
	PlayerID     int64  `json:"player_id,string,omitempty"`
	ProblemOrder int    `json:"problem_order"`
	WinnerID     int64  `json:"winner_id,string,omitempty"`
}
