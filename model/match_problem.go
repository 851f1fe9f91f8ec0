package model

type MatchProblem struct {
	CommonModel
	MatchID   int64  `gorm:"column:match_id;type:bigint;not null;uniqueIndex:idx_match_problems_match_order,priority:1;comment:对局ID"`
	Order     int    `gorm:"column:problem_order;type:int;not null;uniqueIndex:idx_match_problems_match_order,priority:2;comment:题目序号(从0起)"`
	ProblemID string `gorm:"column:problem_id;type:varchar(32);not null;index:idx_match_problems_problem;comment:题目ID"`
	Rating    int    `gorm:"column:rating;type:int;default:0;comment:题目难度"`
}

func (p *MatchProblem) TableName() string {
	return "match_problems"
}
