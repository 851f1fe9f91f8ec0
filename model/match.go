package model

// 对局状态，单向推进：waiting -> active -> finished
const (
	MatchStatusWaiting  int8 = 0
	MatchStatusActive   int8 = 1
	MatchStatusFinished int8 = 2
)

// 对局模式
const (
	LobbyMode1v1  = "1v1"
	LobbyModeFFA  = "ffa"
	LobbyModeTeam = "team"
)

type Match struct {
	CommonModel
	Status              int8   `gorm:"column:status;type:tinyint;default:0;index:idx_matches_status;comment:状态(0等待,1进行中,2结束)"`
	LobbyMode           string `gorm:"column:lobby_mode;type:varchar(16);not null;default:'1v1';comment:模式"`
	Player1ID           int64  `gorm:"column:player1_id;type:bigint;not null;index:idx_matches_player1;comment:玩家1"`
	Player2ID           int64  `gorm:"column:player2_id;type:bigint;default:0;index:idx_matches_player2;comment:玩家2(1v1)"`
	StartTime           int64  `gorm:"column:start_time;type:bigint;default:0;comment:开始时间戳"`
	EndTime             int64  `gorm:"column:end_time;type:bigint;default:0;index:idx_matches_end_time;comment:结束时间戳"`
	DurationSeconds     int64  `gorm:"column:duration_seconds;type:bigint;not null;comment:对局时长(秒)"`
	WinnerID            int64  `gorm:"column:winner_id;type:bigint;default:0;comment:胜者(0为平局)"`
	Player1RatingChange int    `gorm:"column:player1_rating_change;type:int;default:0;comment:玩家1分数变动"`
	Player2RatingChange int    `gorm:"column:player2_rating_change;type:int;default:0;comment:玩家2分数变动"`
	Player1SolvedAt     int64  `gorm:"column:player1_solved_at;type:bigint;default:0;comment:玩家1通过时间戳"`
	Player2SolvedAt     int64  `gorm:"column:player2_solved_at;type:bigint;default:0;comment:玩家2通过时间戳"`
	DrawOfferedBy       int64  `gorm:"column:draw_offered_by;type:bigint;default:0;comment:求和发起者"`
	ResignedBy          int64  `gorm:"column:resigned_by;type:bigint;default:0;comment:认输者"`
	MaxPlayers          int    `gorm:"column:max_players;type:int;default:2;comment:人数上限"`
	TeamSize            int    `gorm:"column:team_size;type:int;default:0;comment:队伍人数(team模式)"`
	ProblemCount        int    `gorm:"column:problem_count;type:int;default:1;comment:题目数量"`
	ChallengeCode       string `gorm:"column:challenge_code;type:varchar(64);default:'';index:idx_matches_challenge_code;comment:邀请码"`
}

func (m *Match) TableName() string {
	return "matches"
}

// Deadline 强制结算时间戳，start 未设置时返回 0
func (m *Match) Deadline() int64 {
	if m.StartTime == 0 {
		return 0
	}
	return m.StartTime + m.DurationSeconds
}

func (m *Match) IsClassic1v1() bool {
	return m.LobbyMode == LobbyMode1v1
}
