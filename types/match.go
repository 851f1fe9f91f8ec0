package types

import "time"

type MatchCreateReq struct {
	LobbyMode       string   `json:"lobby_mode" form:"lobby_mode"`
	MaxPlayers      int      `json:"max_players" form:"max_players"`
	TeamSize        int      `json:"team_size" form:"team_size"`
	ProblemCount    int      `json:"problem_count" form:"problem_count"`
	RatingMin       int      `json:"rating_min" form:"rating_min"`
	RatingMax       int      `json:"rating_max" form:"rating_max"`
	DurationSeconds int64    `json:"duration_seconds" form:"duration_seconds"`
	Tags            []string `json:"tags" form:"tags"`
}

type MatchCreateResp struct {
	Match MatchInfo `json:"match"`
}

type MatchJoinReq struct {
	MatchID       string `json:"match_id" form:"match_id"`
	ChallengeCode string `json:"challenge_code" form:"challenge_code"`
	Team          int    `json:"team" form:"team"`
}

type MatchJoinResp struct {
	Match MatchInfo `json:"match"`
}

type MatchLeaveReq struct {
	MatchID string `json:"match_id" form:"match_id"`
}

type MatchStartReq struct {
	MatchID string `json:"match_id" form:"match_id"`
}

type MatchActionResp struct {
	Match MatchInfo `json:"match"`
}

type MatchInfoReq struct {
	MatchID string `form:"match_id" json:"match_id"`
}

type MatchInfoResp struct {
	Match MatchInfo `json:"match"`
}

type MatchListReq struct {
	Page   int   `form:"page" json:"page"`
	Limit  int   `form:"limit" json:"limit"`
	Status *int8 `form:"status" json:"status"`
}

type MatchListResp struct {
	Total   int64           `json:"total"`
	Matches []MatchListItem `json:"matches"`
}

type MatchListItem struct {
	MatchID      int64     `json:"match_id,string"`
	LobbyMode    string    `json:"lobby_mode"`
	Status       int8      `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	EndTime      int64     `json:"end_time"`
	PlayerCount  int       `json:"player_count"`
	ProblemCount int       `json:"problem_count"`
}

type MatchInfo struct {
	MatchID         int64             `json:"match_id,string"`
	Status          int8              `json:"status"`
	LobbyMode       string            `json:"lobby_mode"`
	StartTime       int64             `json:"start_time"`
	EndTime         int64             `json:"end_time"`
	DurationSeconds int64             `json:"duration_seconds"`
	WinnerID        int64             `json:"winner_id,string"`
	DrawOfferedBy   int64             `json:"draw_offered_by,string"`
	ResignedBy      int64             `json:"resigned_by,string"`
	MaxPlayers      int               `json:"max_players"`
	TeamSize        int               `json:"team_size"`
	ChallengeCode   string            `json:"challenge_code,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	Players         []MatchPlayerInfo `json:"players"`
	Problems        []MatchProblemInfo `json:"problems"`
}

type MatchPlayerInfo struct {
	PlayerID     int64  `json:"player_id,string"`
	Username     string `json:"username"`
	Team         int    `json:"team"`
	SolvedCount  int    `json:"solved_count"`
	RatingChange int    `json:"rating_change"`
	SolvedAt     int64  `json:"solved_at"`
	JoinedAt     int64  `json:"joined_at"`
}

type MatchProblemInfo struct {
	Order      int    `json:"order"`
	ProblemID  string `json:"problem_id"`
	ProblemURL string `json:"problem_url"`
	Rating     int    `json:"rating"`
}

type DrawOfferReq struct {
	MatchID string `json:"match_id" form:"match_id"`
}

type ResignReq struct {
	MatchID string `json:"match_id" form:"match_id"`
}
