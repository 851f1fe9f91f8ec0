package model

// MatchSubmission 仅追加的过题凭证，(match_id, player_id, problem_order) 幂等
type MatchSubmission struct {
	CommonModel
	MatchID      int64 `gorm:"column:match_id;type:bigint;not null;uniqueIndex:idx_match_submissions_key,priority:1;comment:对局ID"`
	PlayerID     int64 `gorm:"column:player_id;type:bigint;not null;uniqueIndex:idx_match_submissions_key,priority:2;comment:玩家ID"`
	ProblemOrder int   `gorm:"column:problem_order;type:int;not null;uniqueIndex:idx_match_submissions_key,priority:3;comment:题目序号"`
	SubmissionID int64 `gorm:"column:submission_id;type:bigint;default:0;comment:评测平台提交ID"`
	SolvedAt     int64 `gorm:"column:solved_at;type:bigint;not null;comment:通过时间戳"`
}

func (s *MatchSubmission) TableName() string {
	return "match_submissions"
}
